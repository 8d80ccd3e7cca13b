package dto

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CreateSubmissionRequest entrada pública de un envío de formulario.
// Values va por field ID, con los valores crudos tal como los mandó el widget.
type CreateSubmissionRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

// SubmissionResponse salida de un envío registrado.
type SubmissionResponse struct {
	ID         string         `json:"id"`
	TenantID   string         `json:"tenant_id"`
	FormID     string         `json:"form_id"`
	CustomerID string         `json:"customer_id,omitempty"` // "" = sin identidad
	Values     map[string]any `json:"values"`
	CreatedAt  time.Time      `json:"created_at"`
}

// SubmissionListResponse envíos asociados a un cliente.
type SubmissionListResponse struct {
	Items []SubmissionResponse `json:"items"`
}

// ToSubmissionResponse mapea la entidad de dominio a su DTO de salida.
func ToSubmissionResponse(s *entity.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:         s.ID,
		TenantID:   s.TenantID,
		FormID:     s.FormID,
		CustomerID: s.CustomerID,
		Values:     s.Values,
		CreatedAt:  s.CreatedAt,
	}
}
