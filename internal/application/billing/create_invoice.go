package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturio/internal/application/dto"
	"github.com/jhoicas/facturio/internal/domain"
	domainbilling "github.com/jhoicas/facturio/internal/domain/billing"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

// Plazo de pago por defecto: fecha de vencimiento = emisión + 14 días.
const paymentTermDays = 14

// defaultPrefix se usa si el negocio no configuró prefijo de numeración.
const defaultPrefix = "FAC"

// CreateInvoiceUseCase crea una factura: calcula totales, asigna el número y
// persiste cabecera + líneas en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     TxRunner
	businessRepo repository.BusinessRepository
	clientRepo   repository.ClientRepository
	invoiceRepo  repository.InvoiceRepository
	calc         *domainbilling.Calculator
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner TxRunner,
	businessRepo repository.BusinessRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		invoiceRepo:  invoiceRepo,
		calc:         domainbilling.NewCalculator(),
	}
}

// CreateInvoice valida negocio y cliente, calcula totales fuera de la
// transacción (es puro) y dentro de ella consume el contador de numeración e
// inserta cabecera y líneas. La factura nace en estado "sent": el producto no
// expone un paso de borrador (decisión documentada, no defecto).
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.BusinessID == "" || in.ClientID == "" {
		return nil, fmt.Errorf("%w: business_id y client_id son obligatorios", domain.ErrInvalidInput)
	}

	business, err := uc.businessRepo.GetByID(in.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if business.OwnerID != userID {
		return nil, domain.ErrForbidden
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.BusinessID != business.ID {
		return nil, domain.ErrForbidden
	}

	items := make([]domainbilling.LineItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = domainbilling.LineItem{
			Label:       it.Label,
			Qty:         it.Qty,
			UnitPriceHT: it.UnitPriceHT,
			VATRate:     it.VATRate,
		}
	}
	totals, err := uc.calc.Compute(items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		BusinessID: business.ID,
		ClientID:   client.ID,
		IssueDate:  now,
		DueDate:    now.AddDate(0, 0, paymentTermDays),
		Status:     entity.StatusSent,
		TotalHT:    totals.TotalHT,
		TotalVAT:   totals.TotalVAT,
		TotalTTC:   totals.TotalTTC,
		Notes:      in.Notes,
		CreatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		businessRepo repository.BusinessRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		// El UPDATE del contador toma el row lock del negocio: dos creaciones
		// concurrentes quedan serializadas aquí y los números salen únicos y
		// estrictamente crecientes.
		seq, err := businessRepo.NextInvoiceSeq(business.ID)
		if err != nil {
			return err
		}
		inv.Number = FormatNumber(business.InvoicePrefix, seq)

		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, lt := range totals.Lines {
			line := &entity.InvoiceLine{
				ID:           uuid.New().String(),
				InvoiceID:    inv.ID,
				Label:        lt.Label,
				Qty:          lt.Qty,
				UnitPriceHT:  lt.UnitPriceHT,
				VATRate:      lt.VATRate,
				LineTotalHT:  lt.LineTotalHT,
				LineTotalVAT: lt.LineTotalVAT,
			}
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
			inv.Lines = append(inv.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// GetInvoice obtiene una factura con sus líneas, verificando que pertenece al
// negocio del usuario autenticado.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkOwnership(inv.BusinessID, userID); err != nil {
		return nil, err
	}
	inv.Lines, err = uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lista las facturas del negocio del usuario, con líneas, de más
// reciente a más antigua. Sin negocio registrado la lista es vacía.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	page.DefaultPage()

	business, err := uc.businessRepo.GetByOwner(userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return []*dto.InvoiceResponse{}, nil
	}

	invoices, err := uc.invoiceRepo.ListByBusiness(business.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		inv.Lines, err = uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

func (uc *CreateInvoiceUseCase) checkOwnership(businessID, userID string) error {
	business, err := uc.businessRepo.GetByID(businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}
	if business.OwnerID != userID {
		return domain.ErrForbidden
	}
	return nil
}

// FormatNumber arma el número legible "<prefix>-<secuencia %05d>".
// Tolera prefijos guardados con guion final ("FAC-") para no duplicarlo.
func FormatNumber(prefix string, seq int64) string {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), "-")
	if p == "" {
		p = defaultPrefix
	}
	return fmt.Sprintf("%s-%05d", p, seq)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		BusinessID:       inv.BusinessID,
		ClientID:         inv.ClientID,
		Number:           inv.Number,
		IssueDate:        inv.IssueDate.Format("2006-01-02"),
		DueDate:          inv.DueDate.Format("2006-01-02"),
		Status:           string(inv.Status),
		TotalHT:          inv.TotalHT,
		TotalVAT:         inv.TotalVAT,
		TotalTTC:         inv.TotalTTC,
		Notes:            inv.Notes,
		DocumentLocation: inv.DocumentLocation,
		Lines:            make([]dto.InvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:           l.ID,
			Label:        l.Label,
			Qty:          l.Qty,
			UnitPriceHT:  l.UnitPriceHT,
			VATRate:      l.VATRate,
			LineTotalHT:  l.LineTotalHT,
			LineTotalVAT: l.LineTotalVAT,
		})
	}
	return resp
}
