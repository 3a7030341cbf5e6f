package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/aggregation"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
	"github.com/jhoicas/inventario-engine/internal/domain/period"
	"github.com/jhoicas/inventario-engine/internal/domain/pricing"
	"github.com/jhoicas/inventario-engine/internal/domain/relationship"
	"github.com/jhoicas/inventario-engine/internal/domain/report"
	"github.com/jhoicas/inventario-engine/internal/domain/repository"
	"github.com/jhoicas/inventario-engine/pkg/logger"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// ReportOptions valores por defecto y límites del reporte (vienen de configuración).
type ReportOptions struct {
	DefaultTopN        int
	MaxTopN            int
	DefaultGranularity period.Granularity
	Location           *time.Location
}

// ProfitReportUseCase arma el reporte de rentabilidad:
//   - Carga el snapshot (ítems, ventas, relaciones) en paralelo.
//   - Indexa las relaciones en un relationship.Graph.
//   - Deriva una línea por cada relación SALE_ITEM y delega el armado en report.Assemble.
//
// No guarda estado entre llamadas.
type ProfitReportUseCase struct {
	snapshots repository.SnapshotRepository
	opts      ReportOptions
	exporters map[string]TableExporter
	log       *logger.Logger
	now       func() time.Time
}

// NewProfitReportUseCase construye el caso de uso.
func NewProfitReportUseCase(snapshots repository.SnapshotRepository, opts ReportOptions, log *logger.Logger) *ProfitReportUseCase {
	if opts.MaxTopN <= 0 {
		opts.MaxTopN = 100
	}
	if opts.DefaultTopN <= 0 || opts.DefaultTopN > opts.MaxTopN {
		opts.DefaultTopN = aggregation.DefaultTopN
	}
	if opts.DefaultGranularity == "" {
		opts.DefaultGranularity = period.Month
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProfitReportUseCase{
		snapshots: snapshots,
		opts:      opts,
		exporters: make(map[string]TableExporter),
		log:       log,
		now:       time.Now,
	}
}

// WithExporters registra los formatos de exportación disponibles.
func (uc *ProfitReportUseCase) WithExporters(exporters ...TableExporter) *ProfitReportUseCase {
	for _, e := range exporters {
		uc.exporters[strings.ToLower(e.Format())] = e
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *ProfitReportUseCase) WithClock(now func() time.Time) *ProfitReportUseCase {
	uc.now = now
	return uc
}

// query parámetros ya validados.
type query struct {
	start, end  time.Time
	granularity period.Granularity
	params      report.Params
}

// Generate genera el reporte completo para el período.
func (uc *ProfitReportUseCase) Generate(ctx context.Context, companyID string, req dto.ProfitReportRequest) (*dto.ProfitReportDTO, error) {
	q, rep, err := uc.build(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	return toProfitReportDTO(q, rep), nil
}

// GenerateTable proyección tabular del reporte (exportaciones CSV, XLSX y PDF).
func (uc *ProfitReportUseCase) GenerateTable(ctx context.Context, companyID string, req dto.ProfitReportRequest) (*dto.ProfitTableDTO, error) {
	q, rep, err := uc.build(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	return &dto.ProfitTableDTO{
		Period:  periodDTO(q),
		Header:  append([]string(nil), report.TableHeader...),
		Rows:    report.TableRows(rep),
		Summary: toSummaryDTO(rep.Summary),
	}, nil
}

// Export genera la tabla y la serializa en el formato pedido (csv, xlsx, pdf).
// Un formato no registrado falla con domain.ErrInvalidInput antes de leer datos.
func (uc *ProfitReportUseCase) Export(ctx context.Context, companyID string, req dto.ProfitReportRequest, format string) (*dto.ExportFileDTO, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportación %q no soportado", domain.ErrInvalidInput, format)
	}
	table, err := uc.GenerateTable(ctx, companyID, req)
	if err != nil {
		return nil, err
	}
	content, err := exporter.Export(table)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", format, err)
	}
	return &dto.ExportFileDTO{
		Filename:    fmt.Sprintf("rentabilidad_%s_%s.%s", table.Period.StartDate, table.Period.EndDate, format),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

func (uc *ProfitReportUseCase) build(ctx context.Context, companyID string, req dto.ProfitReportRequest) (query, report.Report, error) {
	// Los parámetros se validan antes de cualquier lectura: un rango inválido no produce reporte parcial.
	q, err := uc.parse(req)
	if err != nil {
		return query{}, report.Report{}, err
	}

	snap, err := uc.load(ctx, companyID)
	if err != nil {
		return query{}, report.Report{}, err
	}

	records, skipped, err := uc.derive(snap, q)
	if err != nil {
		return query{}, report.Report{}, err
	}
	records, err = aggregation.WithinRange(records, q.start, q.end)
	if err != nil {
		return query{}, report.Report{}, err
	}

	q.params.SkippedLines = skipped
	rep, err := report.Assemble(records, q.params)
	if err != nil {
		return query{}, report.Report{}, fmt.Errorf("reporte de rentabilidad: %w", err)
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("granularity", string(q.granularity)).
		Int("lines", len(records)).
		Int("items", len(rep.Items)).
		Int("skipped_lines", skipped).
		Msg("reporte de rentabilidad generado")
	return q, rep, nil
}

func (uc *ProfitReportUseCase) parse(req dto.ProfitReportRequest) (query, error) {
	start, end, err := period.ParseRange(req.StartDate, req.EndDate, uc.now(), uc.opts.Location)
	if err != nil {
		return query{}, err
	}
	g, err := period.ParseGranularity(req.Period, uc.opts.DefaultGranularity)
	if err != nil {
		return query{}, err
	}

	topN := req.TopN
	if topN <= 0 {
		topN = uc.opts.DefaultTopN
	}
	if topN > uc.opts.MaxTopN {
		topN = uc.opts.MaxTopN
	}

	filter := aggregation.Filter{Category: strings.TrimSpace(req.Category)}
	if s := strings.TrimSpace(req.ProfitThreshold); s != "" {
		threshold, err := decimal.NewFromString(s)
		if err != nil {
			return query{}, fmt.Errorf("%w: profit_threshold inválido %q", domain.ErrInvalidInput, s)
		}
		filter.ProfitThreshold = &threshold
	}

	return query{
		start:       start,
		end:         end,
		granularity: g,
		params:      report.Params{Granularity: g, Filter: filter, TopN: topN},
	}, nil
}

// snapshot datos de una empresa tal como los entrega el almacén.
type snapshot struct {
	items     []entity.Item
	sales     []entity.Transaction
	saleLines []entity.RelationshipEdge
	purchases []entity.RelationshipEdge
}

// load consulta las cuatro colecciones en paralelo (lecturas independientes).
func (uc *ProfitReportUseCase) load(ctx context.Context, companyID string) (snapshot, error) {
	type itemsResult struct {
		rows []entity.Item
		err  error
	}
	type txResult struct {
		rows []entity.Transaction
		err  error
	}
	type edgesResult struct {
		rows []entity.RelationshipEdge
		err  error
	}

	itemsCh := make(chan itemsResult, 1)
	salesCh := make(chan txResult, 1)
	saleLinesCh := make(chan edgesResult, 1)
	purchasesCh := make(chan edgesResult, 1)

	go func() {
		rows, err := uc.snapshots.ListItems(ctx, companyID)
		itemsCh <- itemsResult{rows, err}
	}()
	go func() {
		rows, err := uc.snapshots.ListTransactions(ctx, companyID, entity.TransactionSale)
		salesCh <- txResult{rows, err}
	}()
	go func() {
		rows, err := uc.snapshots.ListRelationships(ctx, companyID, entity.RelSaleItem)
		saleLinesCh <- edgesResult{rows, err}
	}()
	go func() {
		rows, err := uc.snapshots.ListRelationships(ctx, companyID, entity.RelPurchaseItem)
		purchasesCh <- edgesResult{rows, err}
	}()

	items := <-itemsCh
	sales := <-salesCh
	saleLines := <-saleLinesCh
	purchases := <-purchasesCh

	if items.err != nil {
		return snapshot{}, fmt.Errorf("reporte: ítems: %w", items.err)
	}
	if sales.err != nil {
		return snapshot{}, fmt.Errorf("reporte: ventas: %w", sales.err)
	}
	if saleLines.err != nil {
		return snapshot{}, fmt.Errorf("reporte: líneas de venta: %w", saleLines.err)
	}
	if purchases.err != nil {
		return snapshot{}, fmt.Errorf("reporte: líneas de compra: %w", purchases.err)
	}
	return snapshot{
		items:     items.rows,
		sales:     sales.rows,
		saleLines: saleLines.rows,
		purchases: purchases.rows,
	}, nil
}

// derive indexa las relaciones y calcula una línea por venta. Las relaciones inválidas y
// las referencias colgantes (venta o ítem inexistente) se excluyen y se cuentan.
func (uc *ProfitReportUseCase) derive(snap snapshot, q query) ([]pricing.DerivedLineRecord, int, error) {
	items := make(map[string]*entity.Item, len(snap.items))
	for i := range snap.items {
		items[snap.items[i].ID] = &snap.items[i]
	}
	sales := make(map[string]entity.Transaction, len(snap.sales))
	for _, s := range snap.sales {
		sales[s.ID] = s
	}

	skipped := 0
	graph := relationship.NewGraph()
	for _, edges := range [][]entity.RelationshipEdge{snap.purchases, snap.saleLines} {
		for _, e := range edges {
			if _, err := graph.Create(e); err != nil {
				skipped++
				uc.log.Warn().Err(err).Str("relationship_id", e.ID).Msg("relación inválida excluida del reporte")
			}
		}
	}

	records := make([]pricing.DerivedLineRecord, 0, len(snap.saleLines))
	for _, e := range graph.All(entity.RelSaleItem) {
		sale, ok := sales[e.PrimaryID]
		if !ok {
			skipped++
			uc.log.Warn().Str("relationship_id", e.ID).Str("sale_id", e.PrimaryID).Msg("línea con venta inexistente")
			continue
		}
		inRange := period.Contains(sale.Date, q.start, q.end)
		item := items[e.SecondaryID]
		if item == nil {
			if inRange {
				skipped++
				uc.log.Warn().Str("relationship_id", e.ID).Str("item_id", e.SecondaryID).Msg("línea con ítem inexistente")
			}
			continue
		}
		if !inRange {
			continue
		}

		revenue, err := lineRevenue(e, item)
		if err != nil {
			skipped++
			uc.log.Warn().Err(err).Str("relationship_id", e.ID).Msg("no se pudo valorar la línea")
			continue
		}
		if !e.CostPerUnit.IsPositive() {
			e.CostPerUnit = averageCost(graph, e)
		}

		rec, ok, err := pricing.ComputeLine(pricing.LineInput{
			Edge:        e,
			Item:        item,
			Revenue:     revenue,
			OccurredAt:  sale.Date,
			Granularity: q.granularity,
			Location:    uc.opts.Location,
		})
		if err != nil {
			return nil, 0, err
		}
		if ok {
			records = append(records, *rec)
		}
	}

	records, foreign := uc.keepItemDimension(records, items)
	return records, skipped + foreign, nil
}

// keepItemDimension deja, por ítem, solo las líneas en una única dimensión: la de seguimiento
// del ítem si alguna línea la usa, si no la de su primera línea. Devuelve cuántas descartó.
func (uc *ProfitReportUseCase) keepItemDimension(records []pricing.DerivedLineRecord, items map[string]*entity.Item) ([]pricing.DerivedLineRecord, int) {
	expected := make(map[string]measurement.Dimension)
	for _, r := range records {
		dim := r.Amount.Dimension()
		if dim == items[r.ItemID].TrackingDimension() {
			expected[r.ItemID] = dim
		} else if _, ok := expected[r.ItemID]; !ok {
			expected[r.ItemID] = dim
		}
	}

	kept := records[:0]
	dropped := 0
	for _, r := range records {
		if r.Amount.Dimension() != expected[r.ItemID] {
			dropped++
			uc.log.Warn().
				Str("item_id", r.ItemID).
				Str("dimension", string(r.Amount.Dimension())).
				Str("expected", string(expected[r.ItemID])).
				Msg("línea en otra dimensión que el ítem excluida del reporte")
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}

// lineRevenue precio de venta de la línea; sin precio, el valor de inventario del ítem.
func lineRevenue(e entity.RelationshipEdge, item *entity.Item) (decimal.Decimal, error) {
	if e.PricePerUnit.IsPositive() {
		return pricing.SaleRevenue(e), nil
	}
	return pricing.InventoryValue(*item, e.Measurement)
}

// averageCost costo promedio ponderado de las compras del ítem, expresado en la unidad de la venta.
func averageCost(graph *relationship.Graph, sale entity.RelationshipEdge) decimal.Decimal {
	purchases := graph.QueryBySecondary(sale.SecondaryID, entity.EntityItem, entity.RelPurchaseItem)
	perBase, ok := pricing.AverageUnitCost(purchases, sale.Measurement.Dimension())
	if !ok {
		return decimal.Zero
	}
	cost, err := pricing.UnitCostIn(perBase, sale.Measurement.Unit())
	if err != nil {
		return decimal.Zero
	}
	return cost
}

// ── Mapeo a DTO ───────────────────────────────────────────────────────────────

func periodDTO(q query) dto.PeriodDTO {
	return dto.PeriodDTO{StartDate: q.start.Format(dateLayout), EndDate: q.end.Format(dateLayout)}
}

func toProfitReportDTO(q query, rep report.Report) *dto.ProfitReportDTO {
	byCategory := make(map[string]dto.CategoryProfitDTO, len(rep.ProfitByCategory))
	for name, t := range rep.ProfitByCategory {
		byCategory[name] = dto.CategoryProfitDTO{
			Revenue:   t.Revenue.Round(2),
			Cost:      t.Cost.Round(2),
			Profit:    t.Profit.Round(2),
			Margin:    t.Margin.Round(4),
			MarginPct: t.Margin.Mul(hundred).Round(2),
		}
	}
	byTime := make([]dto.PeriodProfitDTO, 0, len(rep.ProfitByTime))
	for _, p := range rep.ProfitByTime {
		byTime = append(byTime, dto.PeriodProfitDTO{
			Period:  p.Period,
			Revenue: p.Revenue.Round(2),
			Cost:    p.Cost.Round(2),
			Profit:  p.Profit.Round(2),
		})
	}
	return &dto.ProfitReportDTO{
		Period:           periodDTO(q),
		Granularity:      string(rep.Granularity),
		Summary:          toSummaryDTO(rep.Summary),
		Items:            toItemDTOs(rep.Items),
		ProfitByCategory: byCategory,
		ProfitByTime:     byTime,
		Categories:       append([]string{}, rep.Categories...),
		TopProfitable:    toItemDTOs(rep.TopProfitable),
		TopUnprofitable:  toItemDTOs(rep.TopUnprofitable),
		TopByQuantity:    toItemDTOs(rep.TopByQuantity),
		TopByWeight:      toItemDTOs(rep.TopByWeight),
		SkippedLines:     rep.SkippedLines,
	}
}

func toSummaryDTO(s aggregation.Summary) dto.ProfitSummaryDTO {
	return dto.ProfitSummaryDTO{
		TotalRevenue:      s.TotalRevenue.Round(2),
		TotalCost:         s.TotalCost.Round(2),
		TotalProfit:       s.TotalProfit.Round(2),
		AverageMargin:     s.AverageMargin.Round(4),
		AverageMarginPct:  s.AverageMargin.Mul(hundred).Round(2),
		TotalUnitsSold:    s.TotalUnitsSold,
		TotalWeightSoldKg: s.TotalWeightSold.Round(3),
		ProfitableItems:   s.ProfitableItems,
		UnprofitableItems: s.UnprofitableItems,
	}
}

func toItemDTOs(items []aggregation.ItemAggregate) []dto.ItemProfitDTO {
	out := make([]dto.ItemProfitDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemProfitDTO{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			SKU:          it.SKU,
			Category:     it.Category,
			TrackingType: it.TrackingType,
			Sold:         toMeasurementDTO(it.Amount),
			Revenue:      it.Revenue.Round(2),
			Cost:         it.Cost.Round(2),
			Profit:       it.Profit.Round(2),
			Margin:       it.Margin.Round(4),
			MarginPct:    it.Margin.Mul(hundred).Round(2),
		})
	}
	return out
}
