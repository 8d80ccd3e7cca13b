// Package identity implementa el núcleo de resolución de identidad de
// clientes: encontrar-o-crear el Customer canónico para cada submission y
// fusionar duplicados reapuntando sus registros dependientes.
package identity

import "context"

// TenantLocker serializa operaciones de escritura por tenant. Resolver y
// MergeCoordinator toman el mismo lock: dos submissions casi simultáneas con
// el mismo email no pueden pasar ambas el "no hay match" y crear duplicados,
// y un resolve no puede escribir sobre un cliente que un merge en vuelo está
// borrando.
//
// Implementaciones: advisory lock de PostgreSQL (pg_advisory_xact_lock) o
// mutex en proceso para el backend de archivo plano.
type TenantLocker interface {
	WithTenantLock(ctx context.Context, tenantID string, fn func() error) error
}
