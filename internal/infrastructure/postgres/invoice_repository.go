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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, tenant_id, customer_id, customer_name, customer_email, customer_phone,
		prefix, number, date, total, status, created_at, updated_at`

// Create persiste una nueva factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.TenantID, invoice.CustomerID,
		invoice.CustomerName, invoice.CustomerEmail, invoice.CustomerPhone,
		invoice.Prefix, invoice.Number, invoice.Date, invoice.Total, invoice.Status,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID dentro del tenant. (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(tenantID, id string) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE tenant_id = $1 AND id = $2`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByCustomer enumera las facturas emitidas a un cliente.
func (r *InvoiceRepo) ListByCustomer(tenantID, customerID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE tenant_id = $1 AND customer_id = $2 ORDER BY date, id`
	rows, err := r.q.Query(context.Background(), query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update persiste el registro completo (el merge reapunta CustomerID y
// refresca los campos de display customer_*).
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $3, customer_name = $4, customer_email = $5,
			customer_phone = $6, prefix = $7, number = $8, date = $9, total = $10,
			status = $11, updated_at = $12
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.TenantID, invoice.ID, invoice.CustomerID,
		invoice.CustomerName, invoice.CustomerEmail, invoice.CustomerPhone,
		invoice.Prefix, invoice.Number, invoice.Date, invoice.Total, invoice.Status,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.TenantID, &inv.CustomerID,
		&inv.CustomerName, &inv.CustomerEmail, &inv.CustomerPhone,
		&inv.Prefix, &inv.Number, &inv.Date, &inv.Total, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
