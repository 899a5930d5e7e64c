package memory

import (
	"sort"
	"sync"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementação em memória de ReceiptRepository.
type ReceiptRepo struct {
	mu       sync.RWMutex
	receipts map[string]entity.Receipt
}

// NewReceiptRepository constrói o repositório vazio.
func NewReceiptRepository() *ReceiptRepo {
	return &ReceiptRepo{receipts: make(map[string]entity.Receipt)}
}

// Create persiste uma nova nota.
func (r *ReceiptRepo) Create(receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts[receipt.ID] = *receipt
	return nil
}

// GetByID obtém uma nota por id; nil se não existe.
func (r *ReceiptRepo) GetByID(id string) (*entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.receipts[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Update substitui o registro inteiro.
func (r *ReceiptRepo) Update(receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.receipts[receipt.ID]; !ok {
		return domain.ErrNotFound
	}
	r.receipts[receipt.ID] = *receipt
	return nil
}

// List devolve as notas do filtro, mais recentes primeiro.
func (r *ReceiptRepo) List(filter repository.ReceiptFilter) ([]*entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Receipt
	for _, rec := range r.receipts {
		if filter.UserID != "" && rec.UserID != filter.UserID {
			continue
		}
		if filter.CompanyName != "" && rec.UserCompanyName != filter.CompanyName {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Category != "" && rec.Category != filter.Category {
			continue
		}
		cp := rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete remove a nota por id.
func (r *ReceiptRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receipts, id)
	return nil
}
