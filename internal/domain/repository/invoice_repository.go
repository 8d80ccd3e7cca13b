package repository

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(tenantID, id string) (*entity.Invoice, error)
	ListByCustomer(tenantID, customerID string) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
}
