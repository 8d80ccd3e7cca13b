package repository

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// FormRepository define el puerto de persistencia para Form (esquemas de
// formulario con su lista ordenada de campos).
type FormRepository interface {
	Create(form *entity.Form) error
	GetByID(tenantID, id string) (*entity.Form, error)
	// GetByIDAnyTenant resuelve un formulario sin conocer el tenant: la
	// ingesta pública de submissions deriva el tenant del formulario.
	GetByIDAnyTenant(id string) (*entity.Form, error)
	ListByTenant(tenantID string) ([]*entity.Form, error)
	Update(form *entity.Form) error
}
