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

// ClientUseCase casos de uso de clientes del negocio.
type ClientUseCase struct {
	clientRepo   repository.ClientRepository
	businessRepo repository.BusinessRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository, businessRepo repository.BusinessRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, businessRepo: businessRepo}
}

// Create registra un cliente en el negocio del usuario autenticado.
func (uc *ClientUseCase) Create(userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name es obligatorio", domain.ErrInvalidInput)
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

	client := &entity.Client{
		ID:         uuid.New().String(),
		BusinessID: business.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		CreatedAt:  time.Now(),
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// ListMine lista los clientes del negocio del usuario. Sin negocio registrado
// la lista es vacía.
func (uc *ClientUseCase) ListMine(userID string, page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	business, err := uc.businessRepo.GetByOwner(userID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return []*dto.ClientResponse{}, nil
	}
	list, err := uc.clientRepo.ListByBusiness(business.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
	}
}
