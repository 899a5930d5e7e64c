package usecase

import (
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// CategoryUseCase leitura do conjunto de categorias do escritório:
// as padrão mais as ad-hoc criadas em confirmações.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase constrói o caso de uso com o porto de persistência.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// ListForUser devolve os nomes de categoria disponíveis para o usuário.
// Business resolve pelo escritório responsável; accounting pelo próprio id.
// Sem escritório vinculado, devolve só o conjunto padrão.
func (uc *CategoryUseCase) ListForUser(actor *entity.User) ([]string, error) {
	firmID := actor.AccountingFirmID
	if actor.IsAccounting() {
		firmID = actor.ID
	}

	names := append([]string(nil), entity.DefaultCategories...)
	if firmID == "" {
		return names, nil
	}

	cats, err := uc.repo.ListByFirm(firmID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, c := range cats {
		if !seen[c.Name] {
			names = append(names, c.Name)
			seen[c.Name] = true
		}
	}
	return names, nil
}
