package export

// Layout de la página A4 horizontal:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa      │  Período (desde / hasta)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | SKU | Categoría | Vendido | Ingreso | ...     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Costo / Utilidad / Margen               │
//	└─────────────────────────────────────────────────────────────┘

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
)

var _ usecase.TableExporter = (*PDFExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// colWidths ancho (sobre 12) de cada columna de la tabla, en el orden del encabezado.
var colWidths = []int{3, 1, 2, 1, 1, 1, 2, 1}

// firstAmountCol columnas desde "Revenue" en adelante son montos.
const firstAmountCol = 4

// ── Generator ─────────────────────────────────────────────────────────────────

// PDFExporter reporte de rentabilidad en PDF usando Maroto v2.
type PDFExporter struct {
	title string
}

// NewPDFExporter construye el exportador; title encabeza el documento (p. ej. el nombre de la empresa).
func NewPDFExporter(title string) *PDFExporter {
	if title == "" {
		title = "Reporte de rentabilidad"
	}
	return &PDFExporter{title: title}
}

func (*PDFExporter) Format() string      { return "pdf" }
func (*PDFExporter) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (g *PDFExporter) Export(table *dto.ProfitTableDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, table.Period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(table.Header))
	m.AddRows(tableDetailRows(table.Rows)...)
	if len(table.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el período", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(table.Summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período (der).
func headerRow(title string, p dto.PeriodDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE RENTABILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Desde: "+p.StartDate, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Hasta: "+p.EndDate, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla sobre fondo del color primario.
func tableHeaderRow(header []string) core.Row {
	cols := make([]core.Col, 0, len(header))
	for i, label := range header {
		a := align.Left
		if i >= firstNumericCol {
			a = align.Right
		}
		cols = append(cols, col.New(width(i)).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por ítem; las utilidades negativas en rojo.
func tableDetailRows(rows [][]string) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cols := make([]core.Col, 0, len(r))
		for i, v := range r {
			p := props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1}
			if i >= firstNumericCol {
				p.Align = align.Right
				p.Right = 1
			}
			if i >= firstAmountCol {
				if len(v) > 0 && v[0] == '-' {
					p.Color = colorLoss
				}
				v = amount(v)
			}
			cols = append(cols, col.New(width(i)).Add(text.New(v, p)))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha, una línea cada 6 mm.
func totalsRow(s dto.ProfitSummaryDTO) core.Row {
	label := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(v string, right float64) core.Component {
		return text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 19,
		})
	}

	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Ingresos:", 1),
			label("Costo:", 7),
			label("Margen promedio:", 13),
			grand("UTILIDAD:", 2),
		),
		col.New(3).Add(
			value("$"+formatDecimal(s.TotalRevenue), 1),
			value("$"+formatDecimal(s.TotalCost), 7),
			value(formatDecimal(s.AverageMarginPct)+"%", 13),
			grand("$"+formatDecimal(s.TotalProfit), 1),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func width(i int) int {
	if i < len(colWidths) {
		return colWidths[i]
	}
	return 1
}
