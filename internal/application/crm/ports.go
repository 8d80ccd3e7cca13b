package crm

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CustomerPDFGenerator genera el dossier PDF de un cliente: bloque de
// contacto, historial de submissions y tabla de facturas.
// La implementación concreta (maroto) vive en infrastructure/pdf.
type CustomerPDFGenerator interface {
	GenerateCustomerPDF(
		ctx context.Context,
		tenant *entity.Tenant,
		customer *entity.Customer,
		submissions []*entity.Submission,
		invoices []*entity.Invoice,
	) ([]byte, error)
}
