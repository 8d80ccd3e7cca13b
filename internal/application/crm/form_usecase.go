package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// FormUseCase casos de uso para formularios de captura.
type FormUseCase struct {
	forms repository.FormRepository
}

// NewFormUseCase construye el caso de uso.
func NewFormUseCase(forms repository.FormRepository) *FormUseCase {
	return &FormUseCase{forms: forms}
}

// Create crea un formulario con su lista ordenada de campos.
func (uc *FormUseCase) Create(tenantID string, in dto.CreateFormRequest) (*dto.FormResponse, error) {
	if tenantID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	form := &entity.Form{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Fields:    toEntityFields(in.Fields),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.forms.Create(form); err != nil {
		return nil, err
	}
	resp := dto.ToFormResponse(form)
	return &resp, nil
}

// List lista los formularios del tenant.
func (uc *FormUseCase) List(tenantID string) (*dto.FormListResponse, error) {
	list, err := uc.forms.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FormResponse, 0, len(list))
	for _, f := range list {
		items = append(items, dto.ToFormResponse(f))
	}
	return &dto.FormListResponse{Items: items}, nil
}

// Get obtiene un formulario por ID dentro del tenant.
func (uc *FormUseCase) Get(tenantID, id string) (*dto.FormResponse, error) {
	f, err := uc.forms.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToFormResponse(f)
	return &resp, nil
}

// Update actualiza nombre y/o campos de un formulario.
// Cambiar el esquema no reprocesa submissions pasadas.
func (uc *FormUseCase) Update(tenantID, id string, in dto.UpdateFormRequest) (*dto.FormResponse, error) {
	f, err := uc.forms.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Fields != nil {
		f.Fields = toEntityFields(in.Fields)
	}
	f.UpdatedAt = time.Now()
	if err := uc.forms.Update(f); err != nil {
		return nil, err
	}
	resp := dto.ToFormResponse(f)
	return &resp, nil
}

func toEntityFields(in []dto.FormFieldRequest) []entity.FormField {
	out := make([]entity.FormField, 0, len(in))
	for _, f := range in {
		out = append(out, entity.FormField{ID: f.ID, Label: f.Label, Type: f.Type})
	}
	return out
}
