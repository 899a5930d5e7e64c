package memory

import (
	"sort"
	"sync"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação em memória de CategoryRepository.
type CategoryRepo struct {
	mu         sync.RWMutex
	categories map[string]entity.Category
}

// NewCategoryRepository constrói o repositório vazio.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{categories: make(map[string]entity.Category)}
}

// Create persiste uma nova categoria.
func (r *CategoryRepo) Create(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = *category
	return nil
}

// GetByFirmAndName obtém uma categoria do escritório pelo nome; nil se não existe.
func (r *CategoryRepo) GetByFirmAndName(firmID, name string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.FirmID == firmID && c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

// ListByFirm lista as categorias do escritório em ordem alfabética.
func (r *CategoryRepo) ListByFirm(firmID string) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Category
	for _, c := range r.categories {
		if c.FirmID == firmID {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete remove a categoria por id.
func (r *CategoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}
