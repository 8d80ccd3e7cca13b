package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/contact"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// FallbackName se usa al crear un cliente sin nombre ni email utilizable.
const FallbackName = "Unknown Customer"

// Resolver encuentra o crea el Customer canónico de un tenant para un
// contacto extraído por el clasificador.
type Resolver struct {
	customers repository.CustomerRepository
	locker    TenantLocker
	log       *logger.Logger
}

// NewResolver construye el resolver.
func NewResolver(customers repository.CustomerRepository, locker TenantLocker, log *logger.Logger) *Resolver {
	return &Resolver{customers: customers, locker: locker, log: log}
}

// Eligible decide si un contacto alcanza para establecer identidad: nombre no
// telefónico, o email. Un teléfono solo nunca crea clientes (evita clientes
// espurios desde formularios que solo piden un número).
func Eligible(rec contact.Record) bool {
	if rec.Name != "" && !contact.PhoneLike(rec.Name) {
		return true
	}
	return rec.Email != ""
}

// Resolve retorna el cliente existente que coincide (actualizado) o uno nuevo.
// (nil, nil) significa "sin identidad": resultado normal, no error; no se
// escribe nada en ese caso.
//
// Matching, en orden de creación de los candidatos y por candidato
// email → nombre → teléfono; gana la primera coincidencia. (Decisión ante
// candidatos que compiten por atributos distintos: ver DESIGN.md.)
func (r *Resolver) Resolve(ctx context.Context, tenantID string, rec contact.Record) (*entity.Customer, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !Eligible(rec) {
		return nil, nil
	}

	var out *entity.Customer
	err := r.locker.WithTenantLock(ctx, tenantID, func() error {
		existing, err := r.customers.ListByTenant(tenantID)
		if err != nil {
			return err
		}
		for _, c := range existing {
			if attr := matchAttribute(c, rec); attr != "" {
				fillForward(c, rec)
				c.SubmissionCount++
				now := time.Now()
				c.LastSubmissionAt = &now
				c.UpdatedAt = now
				if err := r.customers.Update(c); err != nil {
					return err
				}
				r.log.Debug().
					Str("tenant_id", tenantID).
					Str("customer_id", c.ID).
					Str("matched_on", attr).
					Msg("submission resuelta a cliente existente")
				out = c
				return nil
			}
		}

		created := newCustomerFrom(tenantID, rec)
		if err := r.customers.Create(created); err != nil {
			return err
		}
		r.log.Info().
			Str("tenant_id", tenantID).
			Str("customer_id", created.ID).
			Msg("cliente nuevo creado por el resolver")
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveForSubmission es el contrato de conveniencia para el host: clasifica
// los valores contra el esquema y resuelve en un solo paso.
func (r *Resolver) ResolveForSubmission(ctx context.Context, tenantID string, fields []entity.FormField, values map[string]any) (*entity.Customer, error) {
	return r.Resolve(ctx, tenantID, contact.Classify(fields, values))
}

// matchAttribute devuelve el atributo por el que c coincide con rec
// ("email", "name", "phone") o "" si no coincide.
func matchAttribute(c *entity.Customer, rec contact.Record) string {
	if rec.Email != "" && c.Email != "" && strings.EqualFold(rec.Email, c.Email) {
		return "email"
	}
	if rec.Name != "" && c.Name != "" && strings.EqualFold(rec.Name, c.Name) {
		return "name"
	}
	if rec.Phone != "" && c.Phone != "" {
		if d := contact.DigitsOnly(rec.Phone); d != "" && d == contact.DigitsOnly(c.Phone) {
			return "phone"
		}
	}
	return ""
}

// fillForward sobreescribe cada campo del cliente solo con valores entrantes
// no vacíos: un envío incompleto nunca borra datos ya capturados.
func fillForward(c *entity.Customer, rec contact.Record) {
	setIfNotEmpty(&c.Name, rec.Name)
	setIfNotEmpty(&c.Email, rec.Email)
	setIfNotEmpty(&c.Phone, rec.Phone)
	setIfNotEmpty(&c.Address, rec.Address)
	setIfNotEmpty(&c.City, rec.City)
	setIfNotEmpty(&c.State, rec.State)
	setIfNotEmpty(&c.Zip, rec.Zip)
}

func setIfNotEmpty(dst *string, in string) {
	if in != "" {
		*dst = in
	}
}

// newCustomerFrom arma el cliente nuevo. Nombre: el del contacto si es
// utilizable; si no, la parte local del email; si no, FallbackName.
func newCustomerFrom(tenantID string, rec contact.Record) *entity.Customer {
	name := rec.Name
	if name == "" || contact.PhoneLike(name) {
		if local, _, ok := strings.Cut(rec.Email, "@"); ok && local != "" {
			name = local
		} else if rec.Email != "" {
			name = rec.Email
		} else {
			name = FallbackName
		}
	}
	now := time.Now()
	return &entity.Customer{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Name:             name,
		Email:            rec.Email,
		Phone:            rec.Phone,
		Address:          rec.Address,
		City:             rec.City,
		State:            rec.State,
		Zip:              rec.Zip,
		SubmissionCount:  1,
		CreatedAt:        now,
		UpdatedAt:        now,
		LastSubmissionAt: &now,
	}
}
