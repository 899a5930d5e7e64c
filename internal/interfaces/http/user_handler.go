package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/usecase"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// UserHandler administração de contas (exige manage_users).
type UserHandler struct {
	uc    *usecase.UserUseCase
	users repository.UserRepository
}

// NewUserHandler constrói o handler de usuários.
func NewUserHandler(uc *usecase.UserUseCase, users repository.UserRepository) *UserHandler {
	return &UserHandler{uc: uc, users: users}
}

// Create cria um membro direto da equipe em status active.
// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome e email são obrigatórios"})
	}
	out, err := h.uc.Create(actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista usuários, com filtro opcional por papel e status.
// GET /api/users?role=&status=
func (h *UserHandler) List(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	filter := repository.UserFilter{
		Role:   c.Query("role"),
		Status: c.Query("status"),
	}
	out, err := h.uc.List(actor, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get obtém um usuário por id.
// GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	out, err := h.uc.GetByID(actor, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update aplica um patch administrativo.
// PATCH /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	var patch dto.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(actor, c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete remove um membro da equipe.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor := actorOrAbort(c, h.users)
	if actor == nil {
		return nil
	}
	if err := h.uc.Delete(actor, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
