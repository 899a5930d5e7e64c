package repository

import "github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"

// UserFilter restringe listagens de usuários. Campos vazios não filtram.
type UserFilter struct {
	Role   string
	Status string
}

// UserRepository define o porto de persistência para User (DIP).
// Cada mutação é um write atômico por registro; o motor não exige
// transação entre registros.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(filter UserFilter) ([]*entity.User, error)
	Delete(id string) error
}
