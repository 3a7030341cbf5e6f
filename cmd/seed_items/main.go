// seed_items genera un script SQL para poblar la tabla items a partir de un CSV de catálogo.
//
// Uso: go run ./cmd/seed_items -company <id> [-latin1] [ruta/items.csv]
// Por defecto lee items.csv del directorio actual.
// Columnas: sku,name,category,tracking_type,weight_unit,price,price_type (con encabezado).
// Escribe: internal/infrastructure/postgres/migrations/002_seed_items.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"github.com/jhoicas/inventario-engine/internal/domain/entity"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// seedItem fila validada del catálogo.
type seedItem struct {
	sku, name, category      string
	trackingType, weightUnit string
	price                    decimal.Decimal
	priceType                string
}

func main() {
	companyID := flag.String("company", "", "company_id de los ítems (obligatorio)")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1 (exportaciones de Excel)")
	flag.Parse()

	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "Falta -company")
		os.Exit(2)
	}
	csvPath := "items.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := readItems(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_items.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, *companyID, items, uuid.NewString); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ítems\n", outPath, len(items))
}

// readItems valida cada fila; el primer error indica la línea del CSV.
func readItems(r io.Reader) ([]seedItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	items := make([]seedItem, 0, len(records)-1)
	seen := make(map[string]bool)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) < 7 {
			return nil, fmt.Errorf("línea %d: se esperaban 7 columnas, hay %d", line, len(rec))
		}
		it := seedItem{
			sku:          strings.TrimSpace(rec[0]),
			name:         strings.TrimSpace(rec[1]),
			category:     strings.TrimSpace(rec[2]),
			trackingType: strings.ToLower(strings.TrimSpace(rec[3])),
			weightUnit:   strings.ToLower(strings.TrimSpace(rec[4])),
			priceType:    strings.ToLower(strings.TrimSpace(rec[6])),
		}
		if it.sku == "" || it.name == "" {
			return nil, fmt.Errorf("línea %d: sku y name son obligatorios", line)
		}
		if seen[it.sku] {
			return nil, fmt.Errorf("línea %d: sku %q repetido", line, it.sku)
		}
		seen[it.sku] = true

		if it.trackingType == "" {
			it.trackingType = entity.TrackingQuantity
		}
		switch it.trackingType {
		case entity.TrackingQuantity:
			it.weightUnit = ""
		case entity.TrackingWeight:
			if dim, ok := measurement.Unit(it.weightUnit).Dimension(); !ok || dim != measurement.DimensionWeight {
				return nil, fmt.Errorf("línea %d: weight_unit %q inválida", line, it.weightUnit)
			}
		default:
			return nil, fmt.Errorf("línea %d: tracking_type %q inválido", line, it.trackingType)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(rec[5]))
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("línea %d: price %q inválido", line, rec[5])
		}
		it.price = price

		if it.priceType == "" {
			it.priceType = entity.PriceTypeEach
		}
		if it.priceType != entity.PriceTypeEach && it.priceType != entity.PricePerWeightUnit {
			return nil, fmt.Errorf("línea %d: price_type %q inválido", line, it.priceType)
		}
		if it.priceType == entity.PricePerWeightUnit && it.trackingType != entity.TrackingWeight {
			return nil, fmt.Errorf("línea %d: price_type per_weight_unit requiere tracking_type weight", line)
		}
		items = append(items, it)
	}
	sort.Slice(items, func(a, b int) bool { return items[a].sku < items[b].sku })
	return items, nil
}

// writeSQL un INSERT por ítem, idempotente por (company_id, sku).
func writeSQL(w io.Writer, companyID string, items []seedItem, newID func() string) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de ítems\n")
	b.WriteString("-- Generado por cmd/seed_items\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO items (id, company_id, sku, name, category, tracking_type, weight_unit, price, price_type)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, '%s', %s, %s, '%s')\n",
			newID(), escapeSQL(companyID), escapeSQL(it.sku), escapeSQL(it.name),
			nullable(it.category), it.trackingType, nullable(it.weightUnit), it.price.String(), it.priceType)
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category,\n")
		b.WriteString("    tracking_type = EXCLUDED.tracking_type, weight_unit = EXCLUDED.weight_unit,\n")
		b.WriteString("    price = EXCLUDED.price, price_type = EXCLUDED.price_type, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
