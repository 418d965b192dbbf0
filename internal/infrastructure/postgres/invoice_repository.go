package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de una factura. El constraint único
// (business_id, number) es la red de seguridad contra numeración duplicada:
// si se viola, algo saltó el contador y preferimos fallar a emitir dos
// facturas con el mismo número.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, business_id, client_id, number, issue_date, due_date, status, total_ht, total_vat, total_ttc, notes, document_location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.BusinessID, invoice.ClientID, invoice.Number,
		invoice.IssueDate, invoice.DueDate, string(invoice.Status),
		invoice.TotalHT, invoice.TotalVAT, invoice.TotalTTC,
		nullIfEmpty(invoice.Notes), nullIfEmpty(invoice.DocumentLocation), invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, label, qty, unit_price_ht, vat_rate, line_total_ht, line_total_vat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.Label, line.Qty,
		line.UnitPriceHT, line.VATRate, line.LineTotalHT, line.LineTotalVAT,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := selectInvoice + ` WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la cabecera tomando el row lock (SELECT ... FOR UPDATE).
// Con un repositorio atado a una transacción, serializa pagos concurrentes
// sobre la misma factura.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := selectInvoice + ` WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// GetLinesByInvoiceID obtiene las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, label, qty, unit_price_ht, vat_rate, line_total_ht, line_total_vat
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	lines := make([]*entity.InvoiceLine, 0)
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.Label, &l.Qty, &l.UnitPriceHT, &l.VATRate, &l.LineTotalHT, &l.LineTotalVAT); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByBusiness lista cabeceras de un negocio, de más reciente a más antigua.
func (r *InvoiceRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Invoice, error) {
	query := selectInvoice + ` WHERE business_id = $1 ORDER BY created_at DESC, number DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus aplica una transición de estado. Lee el estado actual con
// FOR UPDATE, valida contra la tabla de transiciones de entity.InvoiceStatus
// y recién entonces escribe. Es no-op idempotente si la factura ya está en el
// estado destino.
func (r *InvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidTransition, status)
	}

	var current string
	err := r.q.QueryRow(context.Background(),
		`SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, id,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get invoice status: %w", err)
	}

	from := entity.InvoiceStatus(current)
	if from == status {
		return nil
	}
	if !from.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, status)
	}

	_, err = r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2 WHERE id = $1`, id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// SetDocumentLocation guarda la ruta del documento PDF generado.
func (r *InvoiceRepo) SetDocumentLocation(id, location string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET document_location = $2 WHERE id = $1`, id, location,
	)
	if err != nil {
		return fmt.Errorf("set document location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const selectInvoice = `
	SELECT id, business_id, client_id, number, issue_date, due_date, status, total_ht, total_vat, total_ttc, notes, document_location, created_at
	FROM invoices`

func (r *InvoiceRepo) getOne(query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv      entity.Invoice
		status   string
		notes    *string
		location *string
	)
	err := row.Scan(
		&inv.ID, &inv.BusinessID, &inv.ClientID, &inv.Number,
		&inv.IssueDate, &inv.DueDate, &status,
		&inv.TotalHT, &inv.TotalVAT, &inv.TotalTTC,
		&notes, &location, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.Notes = derefStr(notes)
	inv.DocumentLocation = derefStr(location)
	return &inv, nil
}
