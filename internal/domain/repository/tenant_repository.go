package repository

import "github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"

// TenantRepository define o porto de persistência para Tenant (DIP).
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	List() ([]*entity.Tenant, error)
	Delete(id string) error
}
