package entity

import "time"

// Tenant representa un negocio de servicios aislado (multi-tenant): todos los
// clientes, submissions y facturas pertenecen a exactamente un tenant.
type Tenant struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
