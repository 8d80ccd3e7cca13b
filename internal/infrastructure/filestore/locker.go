package filestore

import (
	"context"
	"sync"

	"github.com/jhoicas/Clientes-api/internal/application/identity"
)

var _ identity.TenantLocker = (*TenantLocker)(nil)

// TenantLocker serializa resolve/merge por tenant con un mutex en proceso.
// Suficiente para el backend de archivo plano, que vive en un solo proceso.
type TenantLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTenantLocker construye el locker.
func NewTenantLocker() *TenantLocker {
	return &TenantLocker{locks: make(map[string]*sync.Mutex)}
}

// WithTenantLock ejecuta fn con el lock del tenant tomado.
func (l *TenantLocker) WithTenantLock(ctx context.Context, tenantID string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	m, ok := l.locks[tenantID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[tenantID] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn()
}
