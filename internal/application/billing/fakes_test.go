package billing_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturio/internal/application/billing"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Replican el contrato de los repositorios PostgreSQL:
// contador atómico en el negocio, tabla de transiciones en UpdateStatus,
// suma de pagos con COALESCE-cero.
// ──────────────────────────────────────────────────────────────────────────────

type fakeBusinessRepo struct {
	businesses map[string]*entity.Business
}

func newFakeBusinessRepo(bs ...*entity.Business) *fakeBusinessRepo {
	r := &fakeBusinessRepo{businesses: make(map[string]*entity.Business)}
	for _, b := range bs {
		r.businesses[b.ID] = b
	}
	return r
}

func (r *fakeBusinessRepo) Create(b *entity.Business) error {
	r.businesses[b.ID] = b
	return nil
}

func (r *fakeBusinessRepo) GetByID(id string) (*entity.Business, error) {
	return r.businesses[id], nil
}

func (r *fakeBusinessRepo) GetByOwner(ownerID string) (*entity.Business, error) {
	for _, b := range r.businesses {
		if b.OwnerID == ownerID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBusinessRepo) List(limit, offset int) ([]*entity.Business, error) {
	out := make([]*entity.Business, 0, len(r.businesses))
	for _, b := range r.businesses {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBusinessRepo) NextInvoiceSeq(businessID string) (int64, error) {
	b, ok := r.businesses[businessID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	b.InvoiceSeq++
	return b.InvoiceSeq, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(cs ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	for _, c := range cs {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0)
	for _, c := range r.clients {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine // invoiceID -> líneas
	order    []string                         // IDs en orden de inserción
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]*entity.InvoiceLine),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	for _, existing := range r.invoices {
		if existing.BusinessID == inv.BusinessID && existing.Number == inv.Number {
			return domain.ErrConflict
		}
	}
	cp := *inv
	cp.Lines = nil
	r.invoices[inv.ID] = &cp
	r.order = append(r.order, inv.ID)
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.lines[line.InvoiceID] = append(r.lines[line.InvoiceID], line)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	return r.lines[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0)
	// Más recientes primero: recorremos el orden de inserción al revés.
	for i := len(r.order) - 1; i >= 0; i-- {
		inv := r.invoices[r.order[i]]
		if inv.BusinessID == businessID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return []*entity.Invoice{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Status == status {
		return nil
	}
	if !inv.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, inv.Status, status)
	}
	inv.Status = status
	return nil
}

func (r *fakeInvoiceRepo) SetDocumentLocation(id, location string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.DocumentLocation = location
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo { return &fakePaymentRepo{} }

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByInvoiceID(invoiceID string) ([]*entity.Payment, error) {
	out := make([]*entity.Payment, 0)
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByInvoiceID(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes, sin
// transacción real.
type fakeTxRunner struct {
	businessRepo *fakeBusinessRepo
	invoiceRepo  *fakeInvoiceRepo
	paymentRepo  *fakePaymentRepo
}

var _ billing.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(
	businessRepo repository.BusinessRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(r.businessRepo, r.invoiceRepo, r.paymentRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture común: un negocio con su dueño y un cliente.
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID    = "user-1"
	otherUser  = "user-2"
	businessID = "biz-1"
	clientID   = "cli-1"
)

type billingFixture struct {
	businessRepo *fakeBusinessRepo
	clientRepo   *fakeClientRepo
	invoiceRepo  *fakeInvoiceRepo
	paymentRepo  *fakePaymentRepo
	txRunner     *fakeTxRunner
}

func newBillingFixture() *billingFixture {
	businessRepo := newFakeBusinessRepo(&entity.Business{
		ID:            businessID,
		OwnerID:       ownerID,
		Name:          "Claire Dupont Coaching",
		InvoicePrefix: "FAC",
	})
	clientRepo := newFakeClientRepo(&entity.Client{
		ID:         clientID,
		BusinessID: businessID,
		FirstName:  "Marc",
		LastName:   "Durand",
	})
	invoiceRepo := newFakeInvoiceRepo()
	paymentRepo := newFakePaymentRepo()
	return &billingFixture{
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		txRunner: &fakeTxRunner{
			businessRepo: businessRepo,
			invoiceRepo:  invoiceRepo,
			paymentRepo:  paymentRepo,
		},
	}
}

func (f *billingFixture) createUC() *billing.CreateInvoiceUseCase {
	return billing.NewCreateInvoiceUseCase(f.txRunner, f.businessRepo, f.clientRepo, f.invoiceRepo)
}

func (f *billingFixture) paymentUC() *billing.RecordPaymentUseCase {
	return billing.NewRecordPaymentUseCase(f.txRunner, f.businessRepo, f.invoiceRepo)
}
