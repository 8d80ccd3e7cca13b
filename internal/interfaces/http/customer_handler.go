package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/crm"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain"
)

// CustomerHandler maneja las peticiones HTTP de clientes canónicos (protegido).
type CustomerHandler struct {
	uc      *crm.CustomerUseCase
	merger  *identity.MergeCoordinator
	scanner *identity.DuplicateScanner
	pdfUC   *crm.PDFUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(
	uc *crm.CustomerUseCase,
	merger *identity.MergeCoordinator,
	scanner *identity.DuplicateScanner,
	pdfUC *crm.PDFUseCase,
) *CustomerHandler {
	return &CustomerHandler{uc: uc, merger: merger, scanner: scanner, pdfUC: pdfUC}
}

// List GET /api/customers?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	list, err := h.uc.List(tenantID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	customer, err := h.uc.Get(tenantID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateCustomerRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	customer, err := h.uc.Update(tenantID, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(customer)
}

// ListSubmissions GET /api/customers/:id/submissions
func (h *CustomerHandler) ListSubmissions(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListSubmissions(tenantID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListInvoices GET /api/customers/:id/invoices
func (h *CustomerHandler) ListInvoices(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListInvoices(tenantID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Merge POST /api/customers/merge
//
// Fusiona el cliente origen en el destino y borra el origen. Si el reapunte
// de dependientes falla parcialmente, responde 409 con los IDs fallidos: el
// origen sigue existiendo y el merge puede reintentarse.
func (h *CustomerHandler) Merge(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MergeRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	result, err := h.merger.Merge(c.Context(), tenantID, in.SourceID, in.TargetID)
	if err != nil {
		var partial *domain.PartialMergeError
		if errors.As(err, &partial) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":                  "PARTIAL_MERGE",
				"message":               "reapunte incompleto, el origen no fue borrado; reintente el merge",
				"failed_submission_ids": partial.FailedSubmissionIDs,
				"failed_invoice_ids":    partial.FailedInvoiceIDs,
			})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente origen o destino no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MergeResponse{
		Target:               dto.ToCustomerResponse(result.Target),
		RepointedSubmissions: result.RepointedSubmissions,
		RepointedInvoices:    result.RepointedInvoices,
	})
}

// Duplicates GET /api/customers/duplicates
func (h *CustomerHandler) Duplicates(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pairs, err := h.scanner.ScanTenant(tenantID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.DuplicatePairResponse, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, dto.DuplicatePairResponse{
			A:         dto.ToCustomerResponse(p.A),
			B:         dto.ToCustomerResponse(p.B),
			MatchedOn: p.MatchedOn,
		})
	}
	return c.JSON(dto.DuplicateListResponse{Items: items})
}

// DownloadPDF GET /api/customers/:id/pdf
func (h *CustomerHandler) DownloadPDF(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadCustomerPDF(c.Context(), tenantID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
