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

// ServiceUseCase casos de uso del catálogo de prestaciones.
type ServiceUseCase struct {
	serviceRepo  repository.ServiceRepository
	businessRepo repository.BusinessRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(serviceRepo repository.ServiceRepository, businessRepo repository.BusinessRepository) *ServiceUseCase {
	return &ServiceUseCase{serviceRepo: serviceRepo, businessRepo: businessRepo}
}

// Create registra una prestación en el catálogo del negocio del usuario.
func (uc *ServiceUseCase) Create(userID string, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Name == "" || in.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: name y duration_min positivos son obligatorios", domain.ErrInvalidInput)
	}
	if in.PriceHT.IsNegative() || in.VATRate.IsNegative() {
		return nil, fmt.Errorf("%w: price_ht y vat_rate no pueden ser negativos", domain.ErrInvalidInput)
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

	service := &entity.Service{
		ID:          uuid.New().String(),
		BusinessID:  business.ID,
		Name:        in.Name,
		DurationMin: in.DurationMin,
		PriceHT:     in.PriceHT,
		VATRate:     in.VATRate,
		CreatedAt:   time.Now(),
	}
	if err := uc.serviceRepo.Create(service); err != nil {
		return nil, err
	}
	return toServiceResponse(service), nil
}

// ListMine lista el catálogo del negocio del usuario.
func (uc *ServiceUseCase) ListMine(userID string, page dto.PageRequest) ([]*dto.ServiceResponse, error) {
	page.DefaultPage()
	business, err := uc.businessRepo.GetByOwner(userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return []*dto.ServiceResponse{}, nil
	}
	list, err := uc.serviceRepo.ListByBusiness(business.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	return out, nil
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		Name:        s.Name,
		DurationMin: s.DurationMin,
		PriceHT:     s.PriceHT,
		VATRate:     s.VATRate,
	}
}
