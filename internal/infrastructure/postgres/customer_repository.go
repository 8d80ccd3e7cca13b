package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, email, phone, address, city, state, zip, notes,
		submission_count, merged_source_ids, created_at, updated_at, last_submission_at`

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.TenantID, customer.Name, customer.Email, customer.Phone,
		customer.Address, customer.City, customer.State, customer.Zip, customer.Notes,
		customer.SubmissionCount, customer.MergedSourceIDs,
		customer.CreatedAt, customer.UpdatedAt, customer.LastSubmissionAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID dentro del tenant. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(tenantID, id string) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE tenant_id = $1 AND id = $2`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByTenant lista los clientes del tenant en orden de creación.
// El resolver depende de este orden para que el primer match sea determinista.
func (r *CustomerRepo) ListByTenant(tenantID string) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE tenant_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update persiste el registro completo de un cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $3, email = $4, phone = $5, address = $6, city = $7,
			state = $8, zip = $9, notes = $10, submission_count = $11, merged_source_ids = $12,
			updated_at = $13, last_submission_at = $14
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		customer.TenantID, customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.Address, customer.City, customer.State, customer.Zip, customer.Notes,
		customer.SubmissionCount, customer.MergedSourceIDs,
		customer.UpdatedAt, customer.LastSubmissionAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente del tenant. Solo lo invoca el coordinador de merge
// como paso final sobre el origen.
func (r *CustomerRepo) Delete(tenantID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.Zip, &c.Notes,
		&c.SubmissionCount, &c.MergedSourceIDs,
		&c.CreatedAt, &c.UpdatedAt, &c.LastSubmissionAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
