package repository

import "github.com/jhoicas/facturio/internal/domain/entity"

// ServiceRepository define el puerto de persistencia para Service (catálogo).
type ServiceRepository interface {
	Create(service *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Service, error)
}
