package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.SubmissionRepository = (*SubmissionRepo)(nil)

// SubmissionRepo implementación de SubmissionRepository (usable con pool o tx).
// Values se persiste como JSONB con los valores crudos tal como llegaron.
type SubmissionRepo struct {
	q Querier
}

// NewSubmissionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubmissionRepository(q Querier) *SubmissionRepo {
	return &SubmissionRepo{q: q}
}

// Create persiste un nuevo envío de formulario.
func (r *SubmissionRepo) Create(submission *entity.Submission) error {
	values, err := json.Marshal(submission.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	query := `
		INSERT INTO submissions (id, tenant_id, form_id, customer_id, field_values, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`
	_, err = r.q.Exec(context.Background(), query,
		submission.ID, submission.TenantID, submission.FormID, submission.CustomerID,
		values, submission.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID dentro del tenant. (nil, nil) si no existe.
func (r *SubmissionRepo) GetByID(tenantID, id string) (*entity.Submission, error) {
	query := `
		SELECT id, tenant_id, form_id, COALESCE(customer_id, ''), field_values, created_at
		FROM submissions WHERE tenant_id = $1 AND id = $2`
	s, err := scanSubmission(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return s, nil
}

// ListByCustomer enumera los envíos apuntando a un cliente, en orden de llegada.
func (r *SubmissionRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Submission, error) {
	query := `
		SELECT id, tenant_id, form_id, COALESCE(customer_id, ''), field_values, created_at
		FROM submissions WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update persiste el registro completo (el merge reapunta CustomerID).
func (r *SubmissionRepo) Update(submission *entity.Submission) error {
	values, err := json.Marshal(submission.Values)
	if err != nil {
		return fmt.Errorf("marshal values: %w", err)
	}
	query := `
		UPDATE submissions SET form_id = $3, customer_id = NULLIF($4, ''), field_values = $5
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		submission.TenantID, submission.ID, submission.FormID, submission.CustomerID, values,
	)
	if err != nil {
		return fmt.Errorf("update submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSubmission(row pgx.Row) (*entity.Submission, error) {
	var s entity.Submission
	var values []byte
	if err := row.Scan(&s.ID, &s.TenantID, &s.FormID, &s.CustomerID, &values, &s.CreatedAt); err != nil {
		return nil, err
	}
	if len(values) > 0 {
		if err := json.Unmarshal(values, &s.Values); err != nil {
			return nil, fmt.Errorf("unmarshal values: %w", err)
		}
	}
	return &s, nil
}
