package filestore

import (
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.FormRepository = (*FormRepo)(nil)

// FormRepo implementación de FormRepository sobre el Store.
type FormRepo struct {
	s *Store
}

// NewFormRepository construye el adaptador.
func NewFormRepository(s *Store) *FormRepo { return &FormRepo{s: s} }

// Create persiste un nuevo formulario.
func (r *FormRepo) Create(form *entity.Form) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(form.TenantID)
	td.Forms = append(td.Forms, cloneForm(form))
	return r.s.flushTenant(form.TenantID)
}

// GetByID devuelve (nil, nil) si no existe en ese tenant.
func (r *FormRepo) GetByID(tenantID, id string) (*entity.Form, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.tenantRead(tenantID).Forms {
		if f.ID == id {
			return cloneForm(f), nil
		}
	}
	return nil, nil
}

// GetByIDAnyTenant busca el formulario en todos los tenants (ingesta pública).
func (r *FormRepo) GetByIDAnyTenant(id string) (*entity.Form, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, td := range r.s.byTen {
		for _, f := range td.Forms {
			if f.ID == id {
				return cloneForm(f), nil
			}
		}
	}
	return nil, nil
}

// ListByTenant lista los formularios del tenant.
func (r *FormRepo) ListByTenant(tenantID string) ([]*entity.Form, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.tenantRead(tenantID).Forms
	out := make([]*entity.Form, 0, len(src))
	for _, f := range src {
		out = append(out, cloneForm(f))
	}
	return out, nil
}

// Update reemplaza el formulario persistido.
func (r *FormRepo) Update(form *entity.Form) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(form.TenantID)
	for i, f := range td.Forms {
		if f.ID == form.ID {
			td.Forms[i] = cloneForm(form)
			return r.s.flushTenant(form.TenantID)
		}
	}
	return fmt.Errorf("%w: formulario %s", domain.ErrNotFound, form.ID)
}
