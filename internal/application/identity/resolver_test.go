package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain/contact"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Resolver — encontrar-o-crear sin duplicados.
//
// Los tests corren contra el backend de archivo plano real (t.TempDir),
// así también queda ejercitado el adaptador filestore.
// ──────────────────────────────────────────────────────────────────────────────

const tenantA = "tenant-a"

type fixture struct {
	store       *filestore.Store
	customers   *filestore.CustomerRepo
	submissions *filestore.SubmissionRepo
	invoices    *filestore.InvoiceRepo
	resolver    *identity.Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(store)
	locker := filestore.NewTenantLocker()
	return &fixture{
		store:       store,
		customers:   customers,
		submissions: filestore.NewSubmissionRepository(store),
		invoices:    filestore.NewInvoiceRepository(store),
		resolver:    identity.NewResolver(customers, locker, logger.Nop()),
	}
}

// ── Elegibilidad ──────────────────────────────────────────────────────────────

// Solo teléfono: sin identidad, nil sin error y cero escrituras.
func TestResolver_SoloTelefonoNoCreaCliente(t *testing.T) {
	f := newFixture(t)

	c, err := f.resolver.Resolve(context.Background(), tenantA, contact.Record{Phone: "310-555-1234"})
	require.NoError(t, err)
	assert.Nil(t, c, "un teléfono solo nunca establece identidad")

	list, err := f.customers.ListByTenant(tenantA)
	require.NoError(t, err)
	assert.Empty(t, list, "no debe haberse creado ningún cliente")
}

// Un "nombre" que en realidad es un teléfono tampoco establece identidad.
func TestResolver_NombreTelefonicoNoElegible(t *testing.T) {
	f := newFixture(t)

	c, err := f.resolver.Resolve(context.Background(), tenantA, contact.Record{Name: "3105551234"})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestResolver_TenantVacioEsInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.resolver.Resolve(context.Background(), "", contact.Record{Name: "Ana"})
	assert.Error(t, err)
}

// ── Deduplicación ─────────────────────────────────────────────────────────────

// Dos envíos con el mismo email producen UN cliente con SubmissionCount == 2.
func TestResolver_DedupPorEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Name: "Juan Díaz", Email: "j@x.com"})
	require.NoError(t, err)
	require.NotNil(t, c1)

	c2, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Email: "J@X.COM", Phone: "3105551234"})
	require.NoError(t, err)
	require.NotNil(t, c2)

	assert.Equal(t, c1.ID, c2.ID, "el match por email es case-insensitive")
	assert.Equal(t, 2, c2.SubmissionCount)

	list, err := f.customers.ListByTenant(tenantA)
	require.NoError(t, err)
	assert.Len(t, list, 1, "no debe existir un segundo cliente")
}

func TestResolver_DedupPorNombre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Name: "María García"})
	require.NoError(t, err)
	c2, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Name: "maría garcía", Email: "m@x.com"})
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, "m@x.com", c2.Email, "el email entrante rellena el campo vacío")
}

// El teléfono compara por dígitos: "(310) 555-1234" == "3105551234".
func TestResolver_DedupPorTelefonoNormalizado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Name: "Pedro Páramo", Phone: "(310) 555-1234"})
	require.NoError(t, err)
	c2, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Name: "P. Páramo", Phone: "310.555.1234"})
	require.NoError(t, err)

	assert.Equal(t, c1.ID, c2.ID, "mismos dígitos = mismo cliente aunque el formato difiera")
	assert.Equal(t, "P. Páramo", c2.Name, "fill-forward: el nombre entrante no vacío sobreescribe")
}

// Tenants distintos nunca comparten clientes.
func TestResolver_AislamientoEntreTenants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c1, err := f.resolver.Resolve(ctx, "tenant-1", contact.Record{Email: "j@x.com"})
	require.NoError(t, err)
	c2, err := f.resolver.Resolve(ctx, "tenant-2", contact.Record{Email: "j@x.com"})
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID, "el mismo email en tenants distintos crea clientes distintos")
}

// ── Fill-forward ──────────────────────────────────────────────────────────────

// Un envío con campos vacíos jamás blanquea datos ya capturados.
func TestResolver_FillForwardNoBlanquea(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.resolver.Resolve(ctx, tenantA, contact.Record{
		Name: "Laura Niño", Email: "l@x.com", Phone: "3105551234", City: "Bogotá",
	})
	require.NoError(t, err)

	c, err := f.resolver.Resolve(ctx, tenantA, contact.Record{Email: "l@x.com"})
	require.NoError(t, err)

	assert.Equal(t, "Laura Niño", c.Name)
	assert.Equal(t, "3105551234", c.Phone)
	assert.Equal(t, "Bogotá", c.City)
	assert.NotNil(t, c.LastSubmissionAt)
}

// ── Creación y nombres de respaldo ────────────────────────────────────────────

func TestResolver_CreacionInicial(t *testing.T) {
	f := newFixture(t)

	c, err := f.resolver.Resolve(context.Background(), tenantA, contact.Record{
		Name: "Ana Ruiz", Email: "ana@x.com",
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, 1, c.SubmissionCount)
	assert.Equal(t, tenantA, c.TenantID)
	assert.NotEmpty(t, c.ID)
	require.NotNil(t, c.LastSubmissionAt)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

// Sin nombre: la parte local del email sirve de nombre.
func TestResolver_NombreDesdeEmail(t *testing.T) {
	f := newFixture(t)

	c, err := f.resolver.Resolve(context.Background(), tenantA, contact.Record{Email: "pepe.rios@x.com"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "pepe.rios", c.Name)
}

// ResolveForSubmission clasifica y resuelve en un paso (contrato del host).
func TestResolver_ResolveForSubmission(t *testing.T) {
	f := newFixture(t)
	fields := []entity.FormField{
		{ID: "f1", Label: "Customer Name", Type: "text"},
		{ID: "f2", Label: "Email", Type: "email"},
	}
	values := map[string]any{"f1": "Rosa Mena", "f2": "rosa@x.com"}

	c, err := f.resolver.ResolveForSubmission(context.Background(), tenantA, fields, values)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Rosa Mena", c.Name)
	assert.Equal(t, "rosa@x.com", c.Email)
}
