package dto

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// FormFieldRequest un campo del formulario tal como lo declara el editor.
type FormFieldRequest struct {
	ID    string `json:"id" validate:"required,min=1,max=100"`
	Label string `json:"label" validate:"max=200"`
	Type  string `json:"type" validate:"max=50"`
}

// CreateFormRequest entrada para crear un formulario de captura.
type CreateFormRequest struct {
	Name   string             `json:"name" validate:"required,min=1,max=200"`
	Fields []FormFieldRequest `json:"fields" validate:"dive"`
}

// UpdateFormRequest entrada para actualizar un formulario.
// Fields nil = no tocar la lista de campos.
type UpdateFormRequest struct {
	Name   *string            `json:"name" validate:"omitempty,min=1,max=200"`
	Fields []FormFieldRequest `json:"fields" validate:"omitempty,dive"`
}

// FormFieldResponse salida de un campo de formulario.
type FormFieldResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// FormResponse salida de un formulario.
type FormResponse struct {
	ID        string              `json:"id"`
	TenantID  string              `json:"tenant_id"`
	Name      string              `json:"name"`
	Fields    []FormFieldResponse `json:"fields"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// FormListResponse lista de formularios del tenant.
type FormListResponse struct {
	Items []FormResponse `json:"items"`
}

// ToFormResponse mapea la entidad de dominio a su DTO de salida.
func ToFormResponse(f *entity.Form) FormResponse {
	fields := make([]FormFieldResponse, 0, len(f.Fields))
	for _, ff := range f.Fields {
		fields = append(fields, FormFieldResponse{ID: ff.ID, Label: ff.Label, Type: ff.Type})
	}
	return FormResponse{
		ID:        f.ID,
		TenantID:  f.TenantID,
		Name:      f.Name,
		Fields:    fields,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
