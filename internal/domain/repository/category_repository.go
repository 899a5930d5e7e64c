package repository

import "github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"

// CategoryRepository define o porto de persistência para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByFirmAndName(firmID, name string) (*entity.Category, error)
	ListByFirm(firmID string) ([]*entity.Category, error)
	Delete(id string) error
}
