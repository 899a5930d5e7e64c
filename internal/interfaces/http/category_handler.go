package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/usecase"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// CategoryHandler exposição do catálogo de categorias do escritório.
type CategoryHandler struct {
	uc    *usecase.CategoryUseCase
	users repository.UserRepository
}

// NewCategoryHandler constrói o handler de categorias.
func NewCategoryHandler(uc *usecase.CategoryUseCase, users repository.UserRepository) *CategoryHandler {
	return &CategoryHandler{uc: uc, users: users}
}

// List devolve as categorias visíveis para o usuário autenticado.
// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	names, err := h.uc.ListForUser(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": names})
}
