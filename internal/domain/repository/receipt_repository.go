package repository

import "github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"

// ReceiptFilter restringe listagens de notas. Campos vazios não filtram.
type ReceiptFilter struct {
	UserID      string
	CompanyName string
	Status      string
	Category    string
}

// ReceiptRepository define o porto de persistência para Receipt (DIP).
type ReceiptRepository interface {
	Create(receipt *entity.Receipt) error
	GetByID(id string) (*entity.Receipt, error)
	Update(receipt *entity.Receipt) error
	// List devolve as notas do filtro ordenadas por CreatedAt decrescente.
	List(filter ReceiptFilter) ([]*entity.Receipt, error)
	Delete(id string) error
}
