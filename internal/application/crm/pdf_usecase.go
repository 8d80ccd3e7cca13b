package crm

import (
	"context"
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// PDFUseCase genera el dossier PDF de un cliente: datos de contacto,
// historial de submissions y facturas asociadas.
type PDFUseCase struct {
	customers   repository.CustomerRepository
	submissions repository.SubmissionRepository
	invoices    repository.InvoiceRepository
	tenants     repository.TenantRepository
	generator   CustomerPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	customers repository.CustomerRepository,
	submissions repository.SubmissionRepository,
	invoices repository.InvoiceRepository,
	tenants repository.TenantRepository,
	generator CustomerPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		customers:   customers,
		submissions: submissions,
		invoices:    invoices,
		tenants:     tenants,
		generator:   generator,
	}
}

// DownloadCustomerPDF recupera cliente, tenant, submissions y facturas, y
// genera el dossier.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el cliente no existe en ese tenant.
func (uc *PDFUseCase) DownloadCustomerPDF(
	ctx context.Context,
	tenantID, customerID string,
) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar cliente ─────────────────────────────────────────────────────
	customer, err := uc.customers.GetByID(tenantID, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar tenant ──────────────────────────────────────────────────────
	tenant, err := uc.tenants.GetByID(tenantID)
	if err != nil || tenant == nil {
		return nil, "", fmt.Errorf("pdf: obtener tenant: %w", err)
	}

	// ── 3. Cargar historial ───────────────────────────────────────────────────
	subs, err := uc.submissions.ListByCustomer(tenantID, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener submissions: %w", err)
	}
	invs, err := uc.invoices.ListByCustomer(tenantID, customerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener facturas: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateCustomerPDF(ctx, tenant, customer, subs, invs)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("cliente_%s.pdf", customer.ID)
	return pdfBytes, filename, nil
}
