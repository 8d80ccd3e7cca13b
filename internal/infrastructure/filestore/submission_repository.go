package filestore

import (
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.SubmissionRepository = (*SubmissionRepo)(nil)

// SubmissionRepo implementación de SubmissionRepository sobre el Store.
type SubmissionRepo struct {
	s *Store
}

// NewSubmissionRepository construye el adaptador.
func NewSubmissionRepository(s *Store) *SubmissionRepo { return &SubmissionRepo{s: s} }

// Create persiste una nueva submission.
func (r *SubmissionRepo) Create(submission *entity.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(submission.TenantID)
	td.Submissions = append(td.Submissions, cloneSubmission(submission))
	return r.s.flushTenant(submission.TenantID)
}

// GetByID devuelve (nil, nil) si no existe en ese tenant.
func (r *SubmissionRepo) GetByID(tenantID, id string) (*entity.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sub := range r.s.tenantRead(tenantID).Submissions {
		if sub.ID == id {
			return cloneSubmission(sub), nil
		}
	}
	return nil, nil
}

// ListByCustomer enumera las submissions que apuntan a un cliente.
func (r *SubmissionRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Submission
	for _, sub := range r.s.tenantRead(tenantID).Submissions {
		if sub.CustomerID == customerID {
			out = append(out, cloneSubmission(sub))
		}
	}
	return out, nil
}

// Update reemplaza la submission persistida.
func (r *SubmissionRepo) Update(submission *entity.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	td := r.s.tenant(submission.TenantID)
	for i, sub := range td.Submissions {
		if sub.ID == submission.ID {
			td.Submissions[i] = cloneSubmission(submission)
			return r.s.flushTenant(submission.TenantID)
		}
	}
	return fmt.Errorf("%w: submission %s", domain.ErrNotFound, submission.ID)
}
