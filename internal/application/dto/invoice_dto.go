package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CreateInvoiceRequest entrada para emitir una factura a un cliente.
type CreateInvoiceRequest struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	Prefix     string          `json:"prefix" validate:"omitempty,max=10"`
	Number     string          `json:"number" validate:"required,max=20"`
	Date       time.Time       `json:"date"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceResponse salida de una factura.
// Los campos customer_* son display duplicado al momento de emitir.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Prefix        string          `json:"prefix"`
	Number        string          `json:"number"`
	Date          time.Time       `json:"date"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InvoiceListResponse facturas asociadas a un cliente.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
}

// ToInvoiceResponse mapea la entidad de dominio a su DTO de salida.
func ToInvoiceResponse(i *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		TenantID:      i.TenantID,
		CustomerID:    i.CustomerID,
		CustomerName:  i.CustomerName,
		CustomerEmail: i.CustomerEmail,
		CustomerPhone: i.CustomerPhone,
		Prefix:        i.Prefix,
		Number:        i.Number,
		Date:          i.Date,
		Total:         i.Total,
		Status:        i.Status,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
