package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/contact"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// IngestUseCase es el flujo de entrada de submissions: clasificar → resolver
// identidad → persistir la submission enlazada al cliente (o suelta si no hay
// identidad).
type IngestUseCase struct {
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	resolver    *Resolver
	log         *logger.Logger
}

// NewIngestUseCase construye el caso de uso.
func NewIngestUseCase(
	forms repository.FormRepository,
	submissions repository.SubmissionRepository,
	resolver *Resolver,
	log *logger.Logger,
) *IngestUseCase {
	return &IngestUseCase{forms: forms, submissions: submissions, resolver: resolver, log: log}
}

// Ingest procesa un envío del formulario formID. El tenant se deriva del
// formulario (la ingesta es pública: el visitante no trae token). Retorna la
// submission persistida y el cliente resuelto (nil si no hubo identidad).
func (uc *IngestUseCase) Ingest(ctx context.Context, formID string, values map[string]any) (*entity.Submission, *entity.Customer, error) {
	if formID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	form, err := uc.forms.GetByIDAnyTenant(formID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar formulario: %w", err)
	}
	if form == nil {
		return nil, nil, fmt.Errorf("%w: formulario %s", domain.ErrNotFound, formID)
	}

	rec := contact.Classify(form.Fields, values)
	customer, err := uc.resolver.Resolve(ctx, form.TenantID, rec)
	if err != nil {
		return nil, nil, err
	}

	sub := &entity.Submission{
		ID:        uuid.New().String(),
		TenantID:  form.TenantID,
		FormID:    form.ID,
		Values:    values,
		CreatedAt: time.Now(),
	}
	if customer != nil {
		sub.CustomerID = customer.ID
	}
	if err := uc.submissions.Create(sub); err != nil {
		return nil, nil, fmt.Errorf("persistir submission: %w", err)
	}

	uc.log.Debug().
		Str("tenant_id", form.TenantID).
		Str("form_id", form.ID).
		Str("submission_id", sub.ID).
		Bool("identified", customer != nil).
		Msg("submission ingresada")
	return sub, customer, nil
}
