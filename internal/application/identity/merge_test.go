package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// MergeCoordinator — consolidación con integridad referencial.
//
// Orden bajo prueba: validar → destino fusionado → reapuntar submissions →
// reapuntar facturas → borrar origen. Una falla de reapunte debe bloquear el
// borrado y dejar el merge reanudable.
// ──────────────────────────────────────────────────────────────────────────────

func newMerger(f *fixture) *identity.MergeCoordinator {
	return identity.NewMergeCoordinator(
		f.customers, f.submissions, f.invoices,
		filestore.NewTenantLocker(), logger.Nop(),
	)
}

func mkCustomer(t *testing.T, f *fixture, c *entity.Customer) *entity.Customer {
	t.Helper()
	if c.TenantID == "" {
		c.TenantID = tenantA
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	require.NoError(t, f.customers.Create(c))
	return c
}

func mkSubmission(t *testing.T, f *fixture, id, customerID string) {
	t.Helper()
	require.NoError(t, f.submissions.Create(&entity.Submission{
		ID: id, TenantID: tenantA, FormID: "form-1", CustomerID: customerID, CreatedAt: time.Now(),
	}))
}

func mkInvoice(t *testing.T, f *fixture, id, customerID, customerName string) {
	t.Helper()
	require.NoError(t, f.invoices.Create(&entity.Invoice{
		ID: id, TenantID: tenantA, CustomerID: customerID, CustomerName: customerName,
		Prefix: "FV", Number: id, Date: time.Now(), Total: decimal.NewFromInt(100),
		Status: entity.InvoiceStatusSent, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

// ── Precondiciones ────────────────────────────────────────────────────────────

func TestMerge_MismoIDEsInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := newMerger(f).Merge(context.Background(), tenantA, "c1", "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMerge_IDsVaciosSonInvalidos(t *testing.T) {
	f := newFixture(t)
	_, err := newMerger(f).Merge(context.Background(), tenantA, "", "c2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMerge_OrigenInexistente(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Destino"})
	_, err := newMerger(f).Merge(context.Background(), tenantA, "no-existe", "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un cliente de OTRO tenant es indistinguible de inexistente: no se filtra
// existencia entre tenants.
func TestMerge_ClienteDeOtroTenantEsNotFound(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "c1", TenantID: "otro-tenant", Name: "Ajeno"})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Destino"})

	_, err := newMerger(f).Merge(context.Background(), tenantA, "c1", "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Política de campos ────────────────────────────────────────────────────────

// Destino gana, origen rellena: merge(source=B, target=A) con A poblado deja
// A intacto; merge(source=A, target=B) con B vacío rellena desde A.
func TestMerge_DestinoGanaOrigenRellena(t *testing.T) {
	ctx := context.Background()

	// Caso 1: el destino ya tiene email → no cambia.
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "a", Name: "A", Email: "a@x.com", Notes: "foo"})
	mkCustomer(t, f, &entity.Customer{ID: "b", Name: "B", Notes: "bar"})

	res, err := newMerger(f).Merge(ctx, tenantA, "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.Target.Email, "el email poblado del destino no se toca")
	assert.Equal(t, "foo\n\n--- Merged from B ---\nbar", res.Target.Notes)

	// Caso 2 (simétrico): el destino no tiene email → se rellena del origen.
	f2 := newFixture(t)
	mkCustomer(t, f2, &entity.Customer{ID: "a", Name: "A", Email: "a@x.com", Notes: "foo"})
	mkCustomer(t, f2, &entity.Customer{ID: "b", Name: "B", Notes: "bar"})

	res2, err := newMerger(f2).Merge(ctx, tenantA, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res2.Target.Email, "el email vacío del destino se rellena")
	assert.Equal(t, "bar\n\n--- Merged from A ---\nfoo", res2.Target.Notes)
}

func TestMerge_NotasDeUnSoloLado(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "a", Name: "A"})
	mkCustomer(t, f, &entity.Customer{ID: "b", Name: "B", Notes: "solo origen"})

	res, err := newMerger(f).Merge(context.Background(), tenantA, "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "solo origen", res.Target.Notes, "sin concatenar cuando un lado está vacío")
}

func TestMerge_ContadoresYMarcasDeTiempo(t *testing.T) {
	f := newFixture(t)
	antes := time.Now().Add(-48 * time.Hour)
	despues := time.Now().Add(-1 * time.Hour)
	mkCustomer(t, f, &entity.Customer{
		ID: "a", Name: "A", SubmissionCount: 3,
		CreatedAt: time.Now(), UpdatedAt: time.Now(), LastSubmissionAt: &despues,
	})
	mkCustomer(t, f, &entity.Customer{
		ID: "b", Name: "B", SubmissionCount: 1,
		CreatedAt: antes, UpdatedAt: antes, LastSubmissionAt: &antes,
	})

	res, err := newMerger(f).Merge(context.Background(), tenantA, "b", "a")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Target.SubmissionCount, "suma simple de contadores")
	assert.WithinDuration(t, antes, res.Target.CreatedAt, time.Second, "CreatedAt = min(ambos)")
	require.NotNil(t, res.Target.LastSubmissionAt)
	assert.WithinDuration(t, despues, *res.Target.LastSubmissionAt, time.Second, "LastSubmissionAt = max(ambos)")
}

// ── Integridad referencial ────────────────────────────────────────────────────

func TestMerge_ReapuntaDependientesYBorraOrigen(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: "J Doe", Email: "j@x.com", SubmissionCount: 3})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "J Doe", SubmissionCount: 1})
	mkSubmission(t, f, "s1", "c2")
	mkSubmission(t, f, "s2", "c2")
	mkSubmission(t, f, "s3", "c1") // ya apunta al destino, no cuenta
	mkInvoice(t, f, "i1", "c2", "J Doe (viejo)")

	res, err := newMerger(f).Merge(context.Background(), tenantA, "c2", "c1")
	require.NoError(t, err)

	assert.Equal(t, 2, res.RepointedSubmissions)
	assert.Equal(t, 1, res.RepointedInvoices)
	assert.Equal(t, 4, res.Target.SubmissionCount)

	// El origen ya no existe.
	gone, err := f.customers.GetByID(tenantA, "c2")
	require.NoError(t, err)
	assert.Nil(t, gone, "el cliente origen debe haber sido borrado")

	// Ningún dependiente sigue apuntando al origen.
	left, err := f.submissions.ListByCustomer(tenantA, "c2")
	require.NoError(t, err)
	assert.Empty(t, left)

	subs, err := f.submissions.ListByCustomer(tenantA, "c1")
	require.NoError(t, err)
	assert.Len(t, subs, 3)

	// La factura reapuntada refresca sus campos de display.
	invs, err := f.invoices.ListByCustomer(tenantA, "c1")
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, "c1", invs[0].CustomerID)
	assert.Equal(t, "J Doe", invs[0].CustomerName)
	assert.Equal(t, "j@x.com", invs[0].CustomerEmail)
}

// Re-entrancia: repetir el merge con el origen ya borrado falla con NotFound
// y no toca el destino.
func TestMerge_ReinvocacionConOrigenBorrado(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: "Destino", SubmissionCount: 2})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Origen", SubmissionCount: 1})

	merger := newMerger(f)
	_, err := merger.Merge(context.Background(), tenantA, "c2", "c1")
	require.NoError(t, err)

	antes, err := f.customers.GetByID(tenantA, "c1")
	require.NoError(t, err)

	_, err = merger.Merge(context.Background(), tenantA, "c2", "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	despues, err := f.customers.GetByID(tenantA, "c1")
	require.NoError(t, err)
	assert.Equal(t, antes, despues, "el destino debe quedar intacto tras el reintento fallido")
}

// ── Falla parcial y reanudación ───────────────────────────────────────────────

// failingSubmissionRepo falla el Update de un ID específico hasta que se desarme.
type failingSubmissionRepo struct {
	repository.SubmissionRepository
	failID string
	armado bool
}

func (r *failingSubmissionRepo) Update(sub *entity.Submission) error {
	if r.armado && sub.ID == r.failID {
		return errors.New("disco lleno")
	}
	return r.SubmissionRepository.Update(sub)
}

// Una falla al reapuntar debe: reportar los IDs fallidos, NO borrar el origen,
// y dejar que un reintento complete sin duplicar el SubmissionCount.
func TestMerge_FallaParcialBloqueaBorradoYEsReanudable(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "c1", Name: "Destino", SubmissionCount: 3})
	mkCustomer(t, f, &entity.Customer{ID: "c2", Name: "Origen", SubmissionCount: 1})
	mkSubmission(t, f, "s1", "c2")
	mkSubmission(t, f, "s2", "c2")

	failing := &failingSubmissionRepo{SubmissionRepository: f.submissions, failID: "s2", armado: true}
	merger := identity.NewMergeCoordinator(
		f.customers, failing, f.invoices,
		filestore.NewTenantLocker(), logger.Nop(),
	)

	_, err := merger.Merge(context.Background(), tenantA, "c2", "c1")
	var parcial *domain.PartialMergeError
	require.ErrorAs(t, err, &parcial, "la falla de reapunte debe aflorar como PartialMergeError")
	assert.Equal(t, []string{"s2"}, parcial.FailedSubmissionIDs)

	// El origen sigue existiendo: el borrado quedó bloqueado.
	source, err := f.customers.GetByID(tenantA, "c2")
	require.NoError(t, err)
	require.NotNil(t, source, "con dependientes sin reapuntar el origen no se borra")

	// Reintento con el storage sano: completa y no vuelve a sumar el contador.
	failing.armado = false
	res, err := merger.Merge(context.Background(), tenantA, "c2", "c1")
	require.NoError(t, err)

	assert.Equal(t, 4, res.Target.SubmissionCount, "el contador no se duplica en el reintento")
	assert.Equal(t, 1, res.RepointedSubmissions, "solo s2 faltaba por reapuntar")

	gone, err := f.customers.GetByID(tenantA, "c2")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

// ── Escenario end-to-end del flujo operador ───────────────────────────────────

func TestMerge_EscenarioCompleto(t *testing.T) {
	f := newFixture(t)
	mkCustomer(t, f, &entity.Customer{ID: "1", Name: "J Doe", Email: "j@x.com", SubmissionCount: 3})
	mkCustomer(t, f, &entity.Customer{ID: "2", Name: "J Doe", SubmissionCount: 1})
	mkSubmission(t, f, "s1", "2")
	mkInvoice(t, f, "i1", "2", "J Doe")

	res, err := newMerger(f).Merge(context.Background(), tenantA, "2", "1")
	require.NoError(t, err)

	assert.Equal(t, "1", res.Target.ID)
	assert.Equal(t, 4, res.Target.SubmissionCount)

	gone, err := f.customers.GetByID(tenantA, "2")
	require.NoError(t, err)
	assert.Nil(t, gone)

	subs, err := f.submissions.ListByCustomer(tenantA, "1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "1", subs[0].CustomerID)
}
