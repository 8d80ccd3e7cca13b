package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// MergeResult es lo que el coordinador reporta al operador.
type MergeResult struct {
	Target               *entity.Customer
	RepointedSubmissions int
	RepointedInvoices    int
}

// MergeCoordinator consolida dos clientes del mismo tenant: fusiona atributos
// en el destino, reapunta todos los dependientes (submissions y facturas) y
// borra el origen como paso final e irreversible.
//
// Orden estricto: validar → escribir destino fusionado → reapuntar
// submissions → reapuntar facturas → borrar origen. Borrar antes de reapuntar
// dejaría dependientes huérfanos ante cualquier interrupción; por eso cada
// reapunte se persiste individualmente y es idempotente (re-invocar con un
// origen ya reapuntado pero no borrado retoma y termina).
type MergeCoordinator struct {
	customers   repository.CustomerRepository
	submissions repository.SubmissionRepository
	invoices    repository.InvoiceRepository
	locker      TenantLocker
	log         *logger.Logger
}

// NewMergeCoordinator construye el coordinador.
func NewMergeCoordinator(
	customers repository.CustomerRepository,
	submissions repository.SubmissionRepository,
	invoices repository.InvoiceRepository,
	locker TenantLocker,
	log *logger.Logger,
) *MergeCoordinator {
	return &MergeCoordinator{
		customers:   customers,
		submissions: submissions,
		invoices:    invoices,
		locker:      locker,
		log:         log,
	}
}

// Merge fusiona sourceID dentro de targetID bajo el lock del tenant.
//
// Errores: domain.ErrInvalidInput (ids vacíos o iguales), domain.ErrNotFound
// (algún id no resuelve en el tenant; un id de otro tenant es indistinguible
// de inexistente para no filtrar existencia entre tenants),
// *domain.PartialMergeError (algún dependiente no pudo reapuntarse — el
// origen NO se borra y el merge puede reintentarse).
func (m *MergeCoordinator) Merge(ctx context.Context, tenantID, sourceID, targetID string) (*MergeResult, error) {
	if tenantID == "" || sourceID == "" || targetID == "" {
		return nil, fmt.Errorf("%w: tenant, source y target son requeridos", domain.ErrInvalidInput)
	}
	if sourceID == targetID {
		return nil, fmt.Errorf("%w: source y target no pueden ser el mismo cliente", domain.ErrInvalidInput)
	}

	var result *MergeResult
	err := m.locker.WithTenantLock(ctx, tenantID, func() error {
		source, err := m.customers.GetByID(tenantID, sourceID)
		if err != nil {
			return err
		}
		if source == nil {
			return fmt.Errorf("%w: cliente origen %s", domain.ErrNotFound, sourceID)
		}
		target, err := m.customers.GetByID(tenantID, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("%w: cliente destino %s", domain.ErrNotFound, targetID)
		}

		// ── 2. Destino fusionado (con marcador de completitud) ───────────────
		// Si el origen ya figura en MergedSourceIDs este es un reintento: los
		// atributos y el SubmissionCount ya fueron aplicados una vez y no se
		// vuelven a sumar.
		if !target.HasMergedSource(sourceID) {
			mergeAttributes(target, source)
			target.MergedSourceIDs = append(target.MergedSourceIDs, sourceID)
			target.UpdatedAt = time.Now()
			if err := m.customers.Update(target); err != nil {
				return err
			}
		}

		// ── 3 y 4. Reapunte de dependientes, registro por registro ───────────
		repointedSubs, failedSubs, firstErr := m.repointSubmissions(tenantID, sourceID, targetID)
		repointedInvs, failedInvs, invErr := m.repointInvoices(tenantID, sourceID, targetID, target)
		if firstErr == nil {
			firstErr = invErr
		}
		if len(failedSubs) > 0 || len(failedInvs) > 0 {
			// El borrado del origen queda bloqueado hasta que un reintento
			// complete el reapunte.
			return &domain.PartialMergeError{
				FailedSubmissionIDs: failedSubs,
				FailedInvoiceIDs:    failedInvs,
				Cause:               firstErr,
			}
		}

		// ── 5. Borrar el origen: paso final e irreversible ───────────────────
		if err := m.customers.Delete(tenantID, sourceID); err != nil {
			return err
		}

		m.log.Info().
			Str("tenant_id", tenantID).
			Str("source_id", sourceID).
			Str("target_id", targetID).
			Int("submissions", repointedSubs).
			Int("invoices", repointedInvs).
			Msg("merge de clientes completado")

		result = &MergeResult{
			Target:               target,
			RepointedSubmissions: repointedSubs,
			RepointedInvoices:    repointedInvs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *MergeCoordinator) repointSubmissions(tenantID, sourceID, targetID string) (repointed int, failed []string, firstErr error) {
	subs, err := m.submissions.ListByCustomer(tenantID, sourceID)
	if err != nil {
		return 0, nil, err
	}
	for _, s := range subs {
		if s.CustomerID == targetID {
			continue // ya reapuntada en un intento anterior
		}
		s.CustomerID = targetID
		if err := m.submissions.Update(s); err != nil {
			failed = append(failed, s.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		repointed++
	}
	return repointed, failed, firstErr
}

func (m *MergeCoordinator) repointInvoices(tenantID, sourceID, targetID string, target *entity.Customer) (repointed int, failed []string, firstErr error) {
	invs, err := m.invoices.ListByCustomer(tenantID, sourceID)
	if err != nil {
		return 0, nil, err
	}
	for _, inv := range invs {
		if inv.CustomerID == targetID {
			continue
		}
		inv.CustomerID = targetID
		// Refrescar los campos de display duplicados con los datos fusionados,
		// sin blanquear los que el destino no tiene.
		setIfNotEmpty(&inv.CustomerName, target.Name)
		setIfNotEmpty(&inv.CustomerEmail, target.Email)
		setIfNotEmpty(&inv.CustomerPhone, target.Phone)
		inv.UpdatedAt = time.Now()
		if err := m.invoices.Update(inv); err != nil {
			failed = append(failed, inv.ID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		repointed++
	}
	return repointed, failed, firstErr
}

// mergeAttributes aplica la política destino-gana-origen-rellena sobre los
// campos escalares, concatena notas y combina contadores y marcas de tiempo.
func mergeAttributes(target, source *entity.Customer) {
	backfill(&target.Name, source.Name)
	backfill(&target.Email, source.Email)
	backfill(&target.Phone, source.Phone)
	backfill(&target.Address, source.Address)
	backfill(&target.City, source.City)
	backfill(&target.State, source.State)
	backfill(&target.Zip, source.Zip)

	switch {
	case target.Notes != "" && source.Notes != "":
		target.Notes = target.Notes + "\n\n--- Merged from " + source.Name + " ---\n" + source.Notes
	case target.Notes == "":
		target.Notes = source.Notes
	}

	target.SubmissionCount += source.SubmissionCount
	target.MergedSourceIDs = append(target.MergedSourceIDs, source.MergedSourceIDs...)

	if source.CreatedAt.Before(target.CreatedAt) {
		target.CreatedAt = source.CreatedAt
	}
	switch {
	case target.LastSubmissionAt == nil:
		target.LastSubmissionAt = source.LastSubmissionAt
	case source.LastSubmissionAt != nil && source.LastSubmissionAt.After(*target.LastSubmissionAt):
		target.LastSubmissionAt = source.LastSubmissionAt
	}
}

// backfill conserva el valor del destino si ya está poblado; si no,
// toma el del origen.
func backfill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
