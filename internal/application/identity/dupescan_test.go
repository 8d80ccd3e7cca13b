package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// DuplicateScanner — reporte de candidatos a merge para el operador.
// ──────────────────────────────────────────────────────────────────────────────

func TestDuplicateScanner_DetectaPorCadaAtributo(t *testing.T) {
	f := newFixture(t)
	scanner := identity.NewDuplicateScanner(f.customers, filestore.NewTenantRepository(f.store), logger.Nop())

	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: "Ana", Email: "ana@x.com"})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Otra", Email: "ANA@X.COM"})
	mkCustomer(t, f, &entity.Customer{ID: "c3", Name: "Luis Gil", Phone: "(310) 555-1234"})
	mkCustomer(t, f, &entity.Customer{ID: "c4", Name: "luis gil", Phone: "999-000-1111"})
	mkCustomer(t, f, &entity.Customer{ID: "c5", Name: "Solo", Phone: "3105551234"})

	pairs, err := scanner.ScanTenant(tenantA)
	require.NoError(t, err)

	got := make(map[string]string, len(pairs))
	for _, p := range pairs {
		got[p.A.ID+"+"+p.B.ID] = p.MatchedOn
	}
	assert.Equal(t, map[string]string{
		"c1+c2": "email",
		"c3+c4": "name",
		"c3+c5": "phone",
	}, got)
}

// Un par que coincide por dos atributos se reporta una sola vez.
func TestDuplicateScanner_ParUnicoAunqueCoincidaDosVeces(t *testing.T) {
	f := newFixture(t)
	scanner := identity.NewDuplicateScanner(f.customers, filestore.NewTenantRepository(f.store), logger.Nop())

	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: "Ana Ruiz", Email: "ana@x.com"})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Ana Ruiz", Email: "ana@x.com"})

	pairs, err := scanner.ScanTenant(tenantA)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "email", pairs[0].MatchedOn, "gana el primer atributo del orden email → nombre → teléfono")
}

// Los clientes de respaldo "Unknown Customer" no se emparejan por nombre.
func TestDuplicateScanner_IgnoraNombreDeRespaldo(t *testing.T) {
	f := newFixture(t)
	scanner := identity.NewDuplicateScanner(f.customers, filestore.NewTenantRepository(f.store), logger.Nop())

	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: identity.FallbackName})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: identity.FallbackName})

	pairs, err := scanner.ScanTenant(tenantA)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
