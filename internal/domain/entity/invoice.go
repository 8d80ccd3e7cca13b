package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft = "DRAFT"
	InvoiceStatusSent  = "SENT"
	InvoiceStatusPaid  = "PAID"
	InvoiceStatusVoid  = "VOID"
)

// Invoice representa una factura emitida a un cliente del tenant.
// CustomerName/Email/Phone son campos de display duplicados desde Customer al
// momento de emitir; el coordinador de merge los refresca al reapuntar.
type Invoice struct {
	ID            string
	TenantID      string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Prefix        string
	Number        string
	Date          time.Time
	Total         decimal.Decimal
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
