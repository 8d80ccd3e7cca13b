package entity

import "time"

// Customer representa el contacto canónico y deduplicado de un tenant.
// Lo crea el resolver de identidad en el primer contacto; lo mutan el resolver
// (contactos repetidos) y el coordinador de merge. Solo el merge lo borra
// (como origen de un merge).
//
// Invariante best-effort: dentro de un tenant no deberían coexistir dos
// Customers que el resolver considere iguales (email/nombre/teléfono). Lo
// garantiza el resolver bajo el lock de tenant, no un constraint de storage.
type Customer struct {
	ID               string
	TenantID         string
	Name             string
	Email            string
	Phone            string
	Address          string
	City             string
	State            string
	Zip              string
	Notes            string
	SubmissionCount  int
	// IDs de clientes origen ya fusionados en este registro. Marcador de
	// completitud: un merge reintentado que encuentre aquí el sourceID no
	// vuelve a sumar SubmissionCount ni a re-aplicar atributos.
	MergedSourceIDs  []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	LastSubmissionAt *time.Time // nil = aún sin submissions
}

// HasMergedSource indica si sourceID ya fue fusionado en este cliente.
func (c *Customer) HasMergedSource(sourceID string) bool {
	for _, id := range c.MergedSourceIDs {
		if id == sourceID {
			return true
		}
	}
	return false
}
