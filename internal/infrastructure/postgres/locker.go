package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Clientes-api/internal/application/identity"
)

var _ identity.TenantLocker = (*AdvisoryLocker)(nil)

// AdvisoryLocker serializa resolve y merge por tenant usando advisory locks
// de PostgreSQL, válido con múltiples instancias del proceso contra la misma
// base. El lock se toma con pg_advisory_xact_lock dentro de una transacción
// y se libera solo en el commit/rollback, cuando fn ya terminó.
type AdvisoryLocker struct {
	pool *pgxpool.Pool
}

// NewAdvisoryLocker construye el locker con el pool.
func NewAdvisoryLocker(pool *pgxpool.Pool) *AdvisoryLocker {
	return &AdvisoryLocker{pool: pool}
}

// WithTenantLock ejecuta fn con el lock del tenant tomado.
func (l *AdvisoryLocker) WithTenantLock(ctx context.Context, tenantID string, fn func() error) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lock tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// hashtext mapea el tenant ID a la clave entera del advisory lock.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tenantID); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	if err := fn(); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lock tx: %w", err)
	}
	return nil
}
