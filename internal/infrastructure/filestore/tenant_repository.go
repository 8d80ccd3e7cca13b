package filestore

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository = (*TenantRepo)(nil)
	_ repository.UserRepository   = (*UserRepo)(nil)
)

// TenantRepo implementación de TenantRepository sobre el Store.
type TenantRepo struct {
	s *Store
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(s *Store) *TenantRepo { return &TenantRepo{s: s} }

func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants = append(r.s.tenants, cloneTenant(tenant))
	return r.s.flushGlobal()
}

func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tenants {
		if t.ID == id {
			return cloneTenant(t), nil
		}
	}
	return nil, nil
}

func (r *TenantRepo) List() ([]*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		out = append(out, cloneTenant(t))
	}
	return out, nil
}

func (r *TenantRepo) Update(tenant *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.tenants {
		if t.ID == tenant.ID {
			r.s.tenants[i] = cloneTenant(tenant)
			return r.s.flushGlobal()
		}
	}
	return fmt.Errorf("%w: tenant %s", domain.ErrNotFound, tenant.ID)
}

// UserRepo implementación de UserRepository sobre el Store.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users = append(r.s.users, cloneUser(user))
	return r.s.flushGlobal()
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.TenantID == tenantID && strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == user.ID {
			r.s.users[i] = cloneUser(user)
			return r.s.flushGlobal()
		}
	}
	return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, user.ID)
}
