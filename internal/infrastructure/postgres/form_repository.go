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

var _ repository.FormRepository = (*FormRepo)(nil)

// FormRepo implementación de FormRepository (usable con pool o tx).
// La lista ordenada de campos se persiste como JSONB; el orden del array
// es el orden de clasificación.
type FormRepo struct {
	q Querier
}

// NewFormRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormRepository(q Querier) *FormRepo {
	return &FormRepo{q: q}
}

// formFieldDoc forma JSON de un campo dentro del documento fields.
type formFieldDoc struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Create persiste un nuevo formulario.
func (r *FormRepo) Create(form *entity.Form) error {
	fields, err := marshalFields(form.Fields)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO forms (id, tenant_id, name, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(context.Background(), query,
		form.ID, form.TenantID, form.Name, fields, form.CreatedAt, form.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert form: %w", err)
	}
	return nil
}

// GetByID obtiene un formulario por ID dentro del tenant. (nil, nil) si no existe.
func (r *FormRepo) GetByID(tenantID, id string) (*entity.Form, error) {
	query := `
		SELECT id, tenant_id, name, fields, created_at, updated_at
		FROM forms WHERE tenant_id = $1 AND id = $2`
	f, err := scanForm(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get form: %w", err)
	}
	return f, nil
}

// GetByIDAnyTenant resuelve un formulario sin conocer el tenant (ingesta pública).
func (r *FormRepo) GetByIDAnyTenant(id string) (*entity.Form, error) {
	query := `
		SELECT id, tenant_id, name, fields, created_at, updated_at
		FROM forms WHERE id = $1`
	f, err := scanForm(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get form: %w", err)
	}
	return f, nil
}

// ListByTenant lista los formularios del tenant.
func (r *FormRepo) ListByTenant(tenantID string) ([]*entity.Form, error) {
	query := `
		SELECT id, tenant_id, name, fields, created_at, updated_at
		FROM forms WHERE tenant_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()
	var list []*entity.Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Update persiste el registro completo de un formulario.
func (r *FormRepo) Update(form *entity.Form) error {
	fields, err := marshalFields(form.Fields)
	if err != nil {
		return err
	}
	query := `
		UPDATE forms SET name = $3, fields = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		form.TenantID, form.ID, form.Name, fields, form.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func marshalFields(fields []entity.FormField) ([]byte, error) {
	docs := make([]formFieldDoc, 0, len(fields))
	for _, f := range fields {
		docs = append(docs, formFieldDoc{ID: f.ID, Label: f.Label, Type: f.Type})
	}
	out, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	return out, nil
}

func scanForm(row pgx.Row) (*entity.Form, error) {
	var f entity.Form
	var fields []byte
	if err := row.Scan(&f.ID, &f.TenantID, &f.Name, &fields, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		var docs []formFieldDoc
		if err := json.Unmarshal(fields, &docs); err != nil {
			return nil, fmt.Errorf("unmarshal fields: %w", err)
		}
		f.Fields = make([]entity.FormField, 0, len(docs))
		for _, d := range docs {
			f.Fields = append(f.Fields, entity.FormField{ID: d.ID, Label: d.Label, Type: d.Type})
		}
	}
	return &f, nil
}
