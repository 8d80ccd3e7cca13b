package repository

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	List() ([]*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
}
