package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// TableHeader orden fijo de columnas de la exportación.
var TableHeader = []string{"Item", "SKU", "Category", "Units Sold", "Revenue", "Cost", "Profit", "Margin (%)"}

var hundred = decimal.NewFromInt(100)

// TableRows una fila por ítem, en el orden de Report.Items. Montos con 2 decimales y
// margen como porcentaje con 2 decimales.
func TableRows(rep Report) [][]string {
	rows := make([][]string, 0, len(rep.Items))
	for _, it := range rep.Items {
		rows = append(rows, []string{
			it.ItemName,
			it.SKU,
			it.Category,
			UnitsSold(it),
			it.Revenue.StringFixed(2),
			it.Cost.StringFixed(2),
			it.Profit.StringFixed(2),
			it.Margin.Mul(hundred).StringFixed(2),
		})
	}
	return rows
}

// UnitsSold magnitud vendida; para medidas distintas de unidades agrega la unidad ("1.5 kg").
func UnitsSold(it aggregation.ItemAggregate) string {
	if it.Amount == nil {
		return "0"
	}
	if it.Amount.Dimension() == measurement.DimensionQuantity {
		return it.Amount.Magnitude().String()
	}
	return it.Amount.Magnitude().String() + " " + string(it.Amount.Unit())
}

// WriteCSV escribe encabezado y filas.
func WriteCSV(w io.Writer, rep Report) error {
	return WriteCSVTable(w, TableHeader, TableRows(rep))
}

// WriteCSVTable escribe una tabla ya proyectada (encabezado + filas).
func WriteCSVTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("escribir filas: %w", err)
	}
	return nil
}
