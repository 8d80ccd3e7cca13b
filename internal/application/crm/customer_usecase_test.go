package crm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application/crm"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Casos de uso CRM sobre el backend de archivo plano real (t.TempDir).
// ──────────────────────────────────────────────────────────────────────────────

const tenantX = "tenant-x"

type crmFixture struct {
	store      *filestore.Store
	customers  *filestore.CustomerRepo
	customerUC *crm.CustomerUseCase
	formUC     *crm.FormUseCase
	invoiceUC  *crm.InvoiceUseCase
}

func newCRMFixture(t *testing.T) *crmFixture {
	t.Helper()
	store, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(store)
	submissions := filestore.NewSubmissionRepository(store)
	invoices := filestore.NewInvoiceRepository(store)
	return &crmFixture{
		store:      store,
		customers:  customers,
		customerUC: crm.NewCustomerUseCase(customers, submissions, invoices),
		formUC:     crm.NewFormUseCase(filestore.NewFormRepository(store)),
		invoiceUC:  crm.NewInvoiceUseCase(invoices, customers),
	}
}

func seedCustomer(t *testing.T, f *crmFixture, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.customers.Create(&entity.Customer{
		ID: id, TenantID: tenantX, Name: name,
		CreatedAt: now, UpdatedAt: now,
	}))
}

// ── Customers ─────────────────────────────────────────────────────────────────

func TestCustomerUseCase_ListPagina(t *testing.T) {
	f := newCRMFixture(t)
	seedCustomer(t, f, "c1", "Ana")
	seedCustomer(t, f, "c2", "Berta")
	seedCustomer(t, f, "c3", "Carlos")

	out, err := f.customerUC.List(tenantX, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Page.Total, "el total refleja todos los clientes del tenant")
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Berta", out.Items[0].Name)
	assert.Equal(t, "Carlos", out.Items[1].Name)
}

func TestCustomerUseCase_GetNoExistente(t *testing.T) {
	f := newCRMFixture(t)

	_, err := f.customerUC.Get(tenantX, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase_UpdateSoloCamposEnviados(t *testing.T) {
	f := newCRMFixture(t)
	seedCustomer(t, f, "c1", "Ana")

	notes := "cliente frecuente"
	out, err := f.customerUC.Update(tenantX, "c1", dto.UpdateCustomerRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "Ana", out.Name, "los campos no enviados se conservan")
	assert.Equal(t, "cliente frecuente", out.Notes)
}

// ── Forms ─────────────────────────────────────────────────────────────────────

func TestFormUseCase_CreateYGet(t *testing.T) {
	f := newCRMFixture(t)

	created, err := f.formUC.Create(tenantX, dto.CreateFormRequest{
		Name: "Solicitud de cotización",
		Fields: []dto.FormFieldRequest{
			{ID: "f1", Label: "Your Name", Type: "text"},
			{ID: "f2", Label: "Email", Type: "email"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := f.formUC.Get(tenantX, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, "f1", got.Fields[0].ID, "el orden de los campos se preserva")
	assert.Equal(t, "email", got.Fields[1].Type)
}

func TestFormUseCase_CreateSinNombre(t *testing.T) {
	f := newCRMFixture(t)

	_, err := f.formUC.Create(tenantX, dto.CreateFormRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func TestInvoiceUseCase_CopiaDisplayDelCliente(t *testing.T) {
	f := newCRMFixture(t)
	now := time.Now()
	require.NoError(t, f.customers.Create(&entity.Customer{
		ID: "c1", TenantID: tenantX, Name: "Ana", Email: "ana@example.com", Phone: "3105551234",
		CreatedAt: now, UpdatedAt: now,
	}))

	inv, err := f.invoiceUC.Create(tenantX, dto.CreateInvoiceRequest{
		CustomerID: "c1", Number: "0001",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", inv.CustomerName)
	assert.Equal(t, "ana@example.com", inv.CustomerEmail)
	assert.Equal(t, "3105551234", inv.CustomerPhone)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
}

func TestInvoiceUseCase_ClienteInexistente(t *testing.T) {
	f := newCRMFixture(t)

	_, err := f.invoiceUC.Create(tenantX, dto.CreateInvoiceRequest{CustomerID: "nope", Number: "0001"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
