package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ── Formato numérico ──────────────────────────────────────────────────────────

// printer separadores de miles y decimales en español (1.234.567,89).
var printer = message.NewPrinter(language.Spanish)

// amount monto con 2 decimales y separadores locales. Si s no es numérico se devuelve tal cual.
func amount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return formatDecimal(d)
}

func formatDecimal(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// numeric valor de celda para hojas de cálculo: número si s es decimal, texto si no.
func numeric(s string) any {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
