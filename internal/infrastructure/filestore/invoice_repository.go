package filestore

import (
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre el Store.
type InvoiceRepo struct {
	s *Store
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(s *Store) *InvoiceRepo { return &InvoiceRepo{s: s} }

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(invoice.TenantID)
	td.Invoices = append(td.Invoices, cloneInvoice(invoice))
	return r.s.flushTenant(invoice.TenantID)
}

// GetByID devuelve (nil, nil) si no existe en ese tenant.
func (r *InvoiceRepo) GetByID(tenantID, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.tenantRead(tenantID).Invoices {
		if inv.ID == id {
			return cloneInvoice(inv), nil
		}
	}
	return nil, nil
}

// ListByCustomer enumera las facturas de un cliente.
func (r *InvoiceRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Invoice
	for _, inv := range r.s.tenantRead(tenantID).Invoices {
		if inv.CustomerID == customerID {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

// Update reemplaza la factura persistida.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(invoice.TenantID)
	for i, inv := range td.Invoices {
		if inv.ID == invoice.ID {
			td.Invoices[i] = cloneInvoice(invoice)
			return r.s.flushTenant(invoice.TenantID)
		}
	}
	return fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoice.ID)
}
