package dto

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// UpdateCustomerRequest entrada para actualizar un cliente (campos opcionales).
// Solo toca atributos de contacto; contadores y marcadores de merge los
// gestionan el resolver y el coordinador de merge.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	City    *string `json:"city" validate:"omitempty,max=100"`
	State   *string `json:"state" validate:"omitempty,max=100"`
	Zip     *string `json:"zip" validate:"omitempty,max=20"`
	Notes   *string `json:"notes"`
}

// CustomerResponse salida de un cliente canónico.
type CustomerResponse struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Zip              string     `json:"zip"`
	Notes            string     `json:"notes"`
	SubmissionCount  int        `json:"submission_count"`
	MergedSourceIDs  []string   `json:"merged_source_ids,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	LastSubmissionAt *time.Time `json:"last_submission_at,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToCustomerResponse mapea la entidad de dominio a su DTO de salida.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		City:             c.City,
		State:            c.State,
		Zip:              c.Zip,
		Notes:            c.Notes,
		SubmissionCount:  c.SubmissionCount,
		MergedSourceIDs:  c.MergedSourceIDs,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		LastSubmissionAt: c.LastSubmissionAt,
	}
}
