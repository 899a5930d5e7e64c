package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/usecase"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// TenantHandler administração de tenants (somente admin).
type TenantHandler struct {
	uc    *usecase.TenantUseCase
	users repository.UserRepository
}

// NewTenantHandler constrói o handler de tenants.
func NewTenantHandler(uc *usecase.TenantUseCase, users repository.UserRepository) *TenantHandler {
	return &TenantHandler{uc: uc, users: users}
}

// List lista todos os tenants.
// GET /api/tenants
func (h *TenantHandler) List(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	out, err := h.uc.List(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update aplica um patch no tenant.
// PATCH /api/tenants/:id
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var patch dto.TenantPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(actor, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
