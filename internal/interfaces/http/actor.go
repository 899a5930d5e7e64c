package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// loadActor resolve a conta autenticada no registro durável. O token é só
// atalho de corte; a autoridade efetiva vem do registro, que pode ter sido
// editado (permissões revogadas, conta bloqueada) depois da emissão.
func loadActor(c *fiber.Ctx, users repository.UserRepository) (*entity.User, error) {
	actor, err := users.GetByID(GetUserID(c))
	if err != nil {
		return nil, err
	}
	if actor == nil || actor.Status != entity.StatusActive {
		return nil, fiber.NewError(fiber.StatusUnauthorized)
	}
	return actor, nil
}

// actorOrAbort resolve o ator ou responde 401 e devolve nil.
func actorOrAbort(c *fiber.Ctx, users repository.UserRepository) *entity.User {
	actor, err := loadActor(c, users)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "conta inválida ou inativa"})
		return nil
	}
	return actor
}
