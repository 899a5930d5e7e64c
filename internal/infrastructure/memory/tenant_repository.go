package memory

import (
	"sort"
	"sync"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementação em memória de TenantRepository.
type TenantRepo struct {
	mu      sync.RWMutex
	tenants map[string]entity.Tenant
}

// NewTenantRepository constrói o repositório vazio.
func NewTenantRepository() *TenantRepo {
	return &TenantRepo{tenants: make(map[string]entity.Tenant)}
}

// Create persiste um novo tenant.
func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[tenant.ID] = *tenant
	return nil
}

// GetByID obtém um tenant por id; nil se não existe.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// Update substitui o registro inteiro.
func (r *TenantRepo) Update(tenant *entity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[tenant.ID]; !ok {
		return domain.ErrNotFound
	}
	r.tenants[tenant.ID] = *tenant
	return nil
}

// List devolve todos os tenants ordenados por adesão decrescente.
func (r *TenantRepo) List() ([]*entity.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		cp := t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.After(out[j].JoinedAt) })
	return out, nil
}

// Delete remove o tenant por id.
func (r *TenantRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, id)
	return nil
}
