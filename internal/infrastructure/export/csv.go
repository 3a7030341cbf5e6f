// Package export serializa la tabla del reporte de rentabilidad en CSV, XLSX y PDF.
package export

import (
	"bytes"

	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/application/usecase"
	"github.com/jhoicas/inventario-engine/internal/domain/report"
)

var _ usecase.TableExporter = (*CSVExporter)(nil)

// CSVExporter encabezado fijo más una fila por ítem.
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

func (CSVExporter) Format() string      { return "csv" }
func (CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVExporter) Export(table *dto.ProfitTableDTO) ([]byte, error) {
	var buf bytes.Buffer
	if err := report.WriteCSVTable(&buf, table.Header, table.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
