package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain"
)

// SubmissionHandler maneja la ingesta pública de envíos de formulario.
// No requiere token: el tenant se deriva del formulario.
type SubmissionHandler struct {
	ingest *identity.IngestUseCase
}

// NewSubmissionHandler construye el handler.
func NewSubmissionHandler(ingest *identity.IngestUseCase) *SubmissionHandler {
	return &SubmissionHandler{ingest: ingest}
}

// Create POST /api/forms/:id/submissions
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	formID := c.Params("id")
	var in dto.CreateSubmissionRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	sub, _, err := h.ingest.Ingest(c.Context(), formID, in.Values)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "FORM_NOT_FOUND", Message: "formulario no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "envío inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSubmissionResponse(sub))
}
