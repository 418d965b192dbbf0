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

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL (usable con pool o tx).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un nuevo negocio. InvoiceSeq inicia en 0.
func (r *BusinessRepo) Create(business *entity.Business) error {
	query := `
		INSERT INTO businesses (id, owner_id, name, siren, siret, tva_intra, vat_scheme, invoice_prefix, invoice_seq, address, city, zip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.OwnerID, business.Name, business.SIREN, business.SIRET,
		business.TVAIntra, business.VATScheme, business.InvoicePrefix, business.InvoiceSeq,
		business.Address, business.City, business.Zip, business.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := selectBusiness + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByOwner obtiene el negocio de un usuario (uno por dueño).
func (r *BusinessRepo) GetByOwner(ownerID string) (*entity.Business, error) {
	query := selectBusiness + ` WHERE owner_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID))
}

// List lista negocios con paginación.
func (r *BusinessRepo) List(limit, offset int) ([]*entity.Business, error) {
	query := selectBusiness + ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	businesses := make([]*entity.Business, 0)
	for rows.Next() {
		var b entity.Business
		if err := scanBusiness(rows, &b); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, &b)
	}
	return businesses, rows.Err()
}

// NextInvoiceSeq incrementa el contador de numeración y devuelve el valor
// consumido. El UPDATE toma el row lock de la fila del negocio: dos facturas
// creadas a la vez sobre el mismo negocio obtienen secuencias distintas y en
// orden, sin ventana de lectura-luego-escritura.
func (r *BusinessRepo) NextInvoiceSeq(businessID string) (int64, error) {
	query := `
		UPDATE businesses SET invoice_seq = invoice_seq + 1
		WHERE id = $1
		RETURNING invoice_seq`
	var seq int64
	err := r.q.QueryRow(context.Background(), query, businessID).Scan(&seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("next invoice seq: %w", err)
	}
	return seq, nil
}

const selectBusiness = `
	SELECT id, owner_id, name, siren, siret, tva_intra, vat_scheme, invoice_prefix, invoice_seq, address, city, zip, created_at
	FROM businesses`

func (r *BusinessRepo) scanOne(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := scanBusiness(row, &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

func scanBusiness(row pgx.Row, b *entity.Business) error {
	return row.Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.SIREN, &b.SIRET, &b.TVAIntra, &b.VATScheme,
		&b.InvoicePrefix, &b.InvoiceSeq, &b.Address, &b.City, &b.Zip, &b.CreatedAt,
	)
}
