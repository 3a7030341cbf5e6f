package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cabecera de transacción.
const (
	TransactionPurchase = "purchase"
	TransactionSale     = "sale"
)

// Transaction cabecera de una compra o venta. Las líneas no se embeben: son
// relaciones (RelationshipEdge) con la transacción como extremo primario.
type Transaction struct {
	ID        string
	CompanyID string
	Kind      string    // purchase, sale
	Reference string    // número de factura/orden del proveedor o cliente
	Party     string    // proveedor o cliente
	Date      time.Time // fecha de negocio; define el período del reporte
	Total     decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
