package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// InvoiceUseCase caso de uso mínimo para emitir facturas a un cliente.
// Los campos customer_* se copian del cliente al momento de emitir; el
// coordinador de merge los refresca si el cliente luego se fusiona.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, customers repository.CustomerRepository) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, customers: customers}
}

// Create emite una factura a un cliente existente del tenant.
func (uc *InvoiceUseCase) Create(tenantID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if tenantID == "" || in.CustomerID == "" || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customers.GetByID(tenantID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	now := time.Now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		Prefix:        in.Prefix,
		Number:        in.Number,
		Date:          date,
		Total:         in.Total,
		Status:        entity.InvoiceStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.invoices.Create(inv); err != nil {
		return nil, err
	}
	resp := dto.ToInvoiceResponse(inv)
	return &resp, nil
}
