package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturio/internal/application/dto"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

// BusinessUseCase casos de uso de negocios. Un usuario puede tener un solo
// negocio; el segundo intento retorna ErrDuplicate.
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(businessRepo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{businessRepo: businessRepo}
}

// Create registra el negocio del usuario autenticado.
func (uc *BusinessUseCase) Create(userID string, in dto.CreateBusinessRequest) (*dto.BusinessResponse, error) {
	if len(in.Name) < 2 || in.VATScheme == "" {
		return nil, fmt.Errorf("%w: name y vat_scheme son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.businessRepo.GetByOwner(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	prefix := in.InvoicePrefix
	if prefix == "" {
		prefix = "FAC"
	}
	business := &entity.Business{
		ID:            uuid.New().String(),
		OwnerID:       userID,
		Name:          in.Name,
		SIREN:         in.SIREN,
		SIRET:         in.SIRET,
		TVAIntra:      in.TVAIntra,
		VATScheme:     in.VATScheme,
		InvoicePrefix: prefix,
		Address:       in.Address,
		City:          in.City,
		Zip:           in.Zip,
		CreatedAt:     time.Now(),
	}
	if err := uc.businessRepo.Create(business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// GetMine devuelve el negocio del usuario autenticado.
func (uc *BusinessUseCase) GetMine(userID string) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByOwner(userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return toBusinessResponse(business), nil
}

// List lista negocios con paginación.
func (uc *BusinessUseCase) List(page dto.PageRequest) ([]*dto.BusinessResponse, error) {
	page.DefaultPage()
	list, err := uc.businessRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BusinessResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBusinessResponse(b))
	}
	return out, nil
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		SIREN:         b.SIREN,
		SIRET:         b.SIRET,
		TVAIntra:      b.TVAIntra,
		VATScheme:     b.VATScheme,
		InvoicePrefix: b.InvoicePrefix,
		Address:       b.Address,
		City:          b.City,
		Zip:           b.Zip,
	}
}
