package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
)

var _ usecase.TableExporter = (*XLSXExporter)(nil)

const (
	sheetItems   = "Rentabilidad"
	sheetSummary = "Resumen"
)

// firstNumericCol columnas desde "Units Sold" en adelante se escriben como número cuando se puede.
const firstNumericCol = 3

// XLSXExporter libro con dos hojas: detalle por ítem y resumen.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Format() string { return "xlsx" }
func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXExporter) Export(table *dto.ProfitTableDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetItems); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// Detalle
	for c, h := range table.Header {
		if err := setCell(f, sheetItems, c+1, 1, h); err != nil {
			return nil, err
		}
	}
	if len(table.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Header), 1)
		if err := f.SetCellStyle(sheetItems, "A1", last, headerStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
		}
	}
	for r, row := range table.Rows {
		for c, v := range row {
			var value any = v
			if c >= firstNumericCol {
				value = numeric(v)
			}
			if err := setCell(f, sheetItems, c+1, r+2, value); err != nil {
				return nil, err
			}
		}
	}
	if len(table.Rows) > 0 && len(table.Header) > firstNumericCol+1 {
		from, _ := excelize.CoordinatesToCellName(firstNumericCol+2, 2)
		to, _ := excelize.CoordinatesToCellName(len(table.Header), len(table.Rows)+1)
		if err := f.SetCellStyle(sheetItems, from, to, moneyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo montos: %w", err)
		}
	}
	if err := f.SetColWidth(sheetItems, "A", "A", 32); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}
	if err := f.SetColWidth(sheetItems, "B", "H", 14); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}

	// Resumen
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	for i, kv := range summaryPairs(table) {
		if err := setCell(f, sheetSummary, 1, i+1, kv.label); err != nil {
			return nil, err
		}
		if err := setCell(f, sheetSummary, 2, i+1, kv.value); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("xlsx: escribir %s!%s: %w", sheet, cell, err)
	}
	return nil
}

type summaryPair struct {
	label string
	value any
}

// summaryPairs filas de la hoja Resumen (y del bloque de totales del PDF).
func summaryPairs(table *dto.ProfitTableDTO) []summaryPair {
	s := table.Summary
	return []summaryPair{
		{"Desde", table.Period.StartDate},
		{"Hasta", table.Period.EndDate},
		{"Ingresos", s.TotalRevenue.InexactFloat64()},
		{"Costo", s.TotalCost.InexactFloat64()},
		{"Utilidad", s.TotalProfit.InexactFloat64()},
		{"Margen promedio (%)", s.AverageMarginPct.InexactFloat64()},
		{"Unidades vendidas", s.TotalUnitsSold.InexactFloat64()},
		{"Peso vendido (kg)", s.TotalWeightSoldKg.InexactFloat64()},
		{"Ítems rentables", s.ProfitableItems},
		{"Ítems con pérdida", s.UnprofitableItems},
	}
}
