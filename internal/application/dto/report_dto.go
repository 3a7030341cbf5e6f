package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ProfitReportRequest parámetros para GET /api/reports/profit.
type ProfitReportRequest struct {
	StartDate       string `query:"start_date"`       // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate         string `query:"end_date"`         // YYYY-MM-DD; por defecto hoy
	Period          string `query:"period"`           // day|week|month|year (default de configuración)
	Category        string `query:"category"`         // vacío = todas; "Uncategorized" = sin categoría
	ProfitThreshold string `query:"profit_threshold"` // decimal; conserva ítems con utilidad >= umbral
	TopN            int    `query:"top_n"`            // tamaño de los rankings (default/max de configuración)
}

// ── Respuesta ─────────────────────────────────────────────────────────────────

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ProfitSummaryDTO totales del conjunto filtrado.
type ProfitSummaryDTO struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	AverageMargin     decimal.Decimal `json:"average_margin"`     // utilidad total / ingreso total
	AverageMarginPct  decimal.Decimal `json:"average_margin_pct"` // AverageMargin * 100
	TotalUnitsSold    decimal.Decimal `json:"total_units_sold"`
	TotalWeightSoldKg decimal.Decimal `json:"total_weight_sold_kg"`
	ProfitableItems   int             `json:"profitable_items"`
	UnprofitableItems int             `json:"unprofitable_items"`
}

// ItemProfitDTO fila por ítem.
type ItemProfitDTO struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	TrackingType string          `json:"tracking_type"`
	Sold         MeasurementDTO  `json:"sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Cost         decimal.Decimal `json:"cost"`
	Profit       decimal.Decimal `json:"profit"`
	Margin       decimal.Decimal `json:"margin"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// CategoryProfitDTO totales de una categoría.
type CategoryProfitDTO struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// PeriodProfitDTO totales de un bucket de tiempo.
type PeriodProfitDTO struct {
	Period  string          `json:"period"` // 2026-02-14, 2026-W07, 2026-02, 2026
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`
}

// ProfitReportDTO respuesta completa de GET /api/reports/profit.
type ProfitReportDTO struct {
	Period           PeriodDTO                    `json:"period"`
	Granularity      string                       `json:"granularity"`
	Summary          ProfitSummaryDTO             `json:"summary"`
	Items            []ItemProfitDTO              `json:"items"`
	ProfitByCategory map[string]CategoryProfitDTO `json:"profit_by_category"`
	ProfitByTime     []PeriodProfitDTO            `json:"profit_by_time"`
	Categories       []string                     `json:"categories"`
	TopProfitable    []ItemProfitDTO              `json:"top_profitable"`
	TopUnprofitable  []ItemProfitDTO              `json:"top_unprofitable"`
	TopByQuantity    []ItemProfitDTO              `json:"top_by_quantity"`
	TopByWeight      []ItemProfitDTO              `json:"top_by_weight"`
	SkippedLines     int                          `json:"skipped_lines"` // líneas con referencias colgantes
}

// ProfitTableDTO proyección tabular (CSV/XLSX/PDF) con columnas fijas.
type ProfitTableDTO struct {
	Period  PeriodDTO
	Header  []string
	Rows    [][]string
	Summary ProfitSummaryDTO
}

// ExportFileDTO archivo generado por GET /api/reports/profit/export.
type ExportFileDTO struct {
	Filename    string
	ContentType string
	Content     []byte
}
