package filestore

import (
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre el Store.
type CustomerRepo struct {
	s *Store
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{s: s} }

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(customer.TenantID)
	for _, c := range td.Customers {
		if c.ID == customer.ID {
			return domain.ErrDuplicate
		}
	}
	td.Customers = append(td.Customers, cloneCustomer(customer))
	return r.s.flushTenant(customer.TenantID)
}

// GetByID devuelve (nil, nil) si no existe en ese tenant.
func (r *CustomerRepo) GetByID(tenantID, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.tenantRead(tenantID).Customers {
		if c.ID == id {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

// ListByTenant devuelve los clientes en orden de creación.
func (r *CustomerRepo) ListByTenant(tenantID string) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.tenantRead(tenantID).Customers
	out := make([]*entity.Customer, 0, len(src))
	for _, c := range src {
		out = append(out, cloneCustomer(c))
	}
	return out, nil
}

// Update reemplaza el cliente persistido.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(customer.TenantID)
	for i, c := range td.Customers {
		if c.ID == customer.ID {
			td.Customers[i] = cloneCustomer(customer)
			return r.s.flushTenant(customer.TenantID)
		}
	}
	return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, customer.ID)
}

// Delete elimina el cliente del tenant.
func (r *CustomerRepo) Delete(tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(tenantID)
	for i, c := range td.Customers {
		if c.ID == id {
			td.Customers = append(td.Customers[:i], td.Customers[i+1:]...)
			return r.s.flushTenant(tenantID)
		}
	}
	return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
}
