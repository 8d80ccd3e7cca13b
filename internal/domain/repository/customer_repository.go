package repository

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// El core (resolver, merge) depende solo de esta interfaz; el backend físico
// (PostgreSQL o archivo plano) se elige una vez al arrancar el proceso.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si el cliente no existe en ese tenant.
	GetByID(tenantID, id string) (*entity.Customer, error)
	// ListByTenant devuelve los clientes del tenant en orden de creación.
	// El resolver recorre esta lista para buscar coincidencias.
	ListByTenant(tenantID string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(tenantID, id string) error
}
