package identity

import (
	"context"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain/contact"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// DuplicatePair es un par de clientes que el resolver consideraría el mismo
// contacto. Es insumo para que un operador decida un merge; el sistema nunca
// fusiona solo.
type DuplicatePair struct {
	A         *entity.Customer
	B         *entity.Customer
	MatchedOn string // email | name | phone
}

// DuplicateScanner detecta candidatos a merge con las mismas reglas de
// igualdad del resolver (email/nombre case-insensitive, teléfono por dígitos).
// Los duplicados aparecen pese al lock de tenant cuando dos envíos traen
// atributos disjuntos (uno solo email, otro solo teléfono) y luego un tercero
// los conecta.
type DuplicateScanner struct {
	customers repository.CustomerRepository
	tenants   repository.TenantRepository
	log       *logger.Logger
}

// NewDuplicateScanner construye el scanner.
func NewDuplicateScanner(customers repository.CustomerRepository, tenants repository.TenantRepository, log *logger.Logger) *DuplicateScanner {
	return &DuplicateScanner{customers: customers, tenants: tenants, log: log}
}

// ScanTenant lista los pares duplicados de un tenant. Cada par se reporta una
// sola vez aunque coincida por más de un atributo (gana el primero en el
// orden email → nombre → teléfono).
func (s *DuplicateScanner) ScanTenant(tenantID string) ([]DuplicatePair, error) {
	customers, err := s.customers.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}

	var pairs []DuplicatePair
	seen := make(map[string]bool)
	byEmail := make(map[string]*entity.Customer)
	byName := make(map[string]*entity.Customer)
	byPhone := make(map[string]*entity.Customer)

	report := func(a, b *entity.Customer, attr string) {
		key := a.ID + "|" + b.ID
		if seen[key] {
			return
		}
		seen[key] = true
		pairs = append(pairs, DuplicatePair{A: a, B: b, MatchedOn: attr})
	}

	for _, c := range customers {
		if k := strings.ToLower(c.Email); k != "" {
			if prev, ok := byEmail[k]; ok {
				report(prev, c, "email")
			} else {
				byEmail[k] = c
			}
		}
		if k := strings.ToLower(c.Name); k != "" && k != strings.ToLower(FallbackName) {
			if prev, ok := byName[k]; ok {
				report(prev, c, "name")
			} else {
				byName[k] = c
			}
		}
		if k := contact.DigitsOnly(c.Phone); k != "" {
			if prev, ok := byPhone[k]; ok {
				report(prev, c, "phone")
			} else {
				byPhone[k] = c
			}
		}
	}
	return pairs, nil
}

// ScanAll recorre todos los tenants y deja en el log un resumen por tenant.
// Pensado para correr como job nocturno.
func (s *DuplicateScanner) ScanAll(ctx context.Context) {
	tenants, err := s.tenants.List()
	if err != nil {
		s.log.Error().Err(err).Msg("dupescan: listar tenants")
		return
	}
	for _, t := range tenants {
		if ctx.Err() != nil {
			return
		}
		pairs, err := s.ScanTenant(t.ID)
		if err != nil {
			s.log.Error().Err(err).Str("tenant_id", t.ID).Msg("dupescan: escanear tenant")
			continue
		}
		if len(pairs) == 0 {
			continue
		}
		s.log.Warn().
			Str("tenant_id", t.ID).
			Int("candidates", len(pairs)).
			Msg("dupescan: candidatos a merge detectados")
	}
}
