package usecase

import (
	"time"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// TenantUseCase administração de tenants (assinaturas de escritórios).
// Propriedade exclusiva de contas admin; os contadores de uso são mantidos
// externamente, sem derivação a partir dos usuários.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase constrói o caso de uso com o porto de persistência.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// List lista todos os tenants.
func (uc *TenantUseCase) List(actor *entity.User) ([]*dto.TenantResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	tenants, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, len(tenants))
	for i, t := range tenants {
		out[i] = toTenantResponse(t)
	}
	return out, nil
}

// Update funde um patch no tenant.
func (uc *TenantUseCase) Update(actor *entity.User, id string, patch dto.TenantPatch) (*dto.TenantResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	tenant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	if patch.Name != nil {
		tenant.Name = *patch.Name
	}
	if patch.Plan != nil {
		tenant.Plan = *patch.Plan
	}
	if patch.Status != nil {
		tenant.Status = *patch.Status
	}
	if patch.UsersCount != nil {
		tenant.UsersCount = *patch.UsersCount
	}
	if patch.StorageUsedGB != nil {
		tenant.StorageUsedGB = *patch.StorageUsedGB
	}
	tenant.UpdatedAt = time.Now()

	if err := uc.repo.Update(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:            t.ID,
		Name:          t.Name,
		Plan:          t.Plan,
		Status:        t.Status,
		UsersCount:    t.UsersCount,
		StorageUsedGB: t.StorageUsedGB,
		JoinedAt:      t.JoinedAt,
	}
}
