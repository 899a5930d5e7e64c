package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	pkgjwt "github.com/villa61pizzaria-cell/notarapp/pkg/jwt"
)

// Chaves de Locals preenchidas pelo AuthMiddleware.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalPermissions = "permissions"
)

// AuthMiddleware valida o Bearer Token JWT e coloca id, papel e permissões
// em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token ausente"})
		}
		claims, err := pkgjwt.Parse(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalPermissions, claims.Permissions)
		return c.Next()
	}
}

// GetUserID devolve o id do usuário autenticado ("" se ausente).
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetRole devolve o papel do usuário autenticado ("" se ausente).
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}

// GetPermissions devolve as permissões do token como conjunto.
func GetPermissions(c *fiber.Ctx) entity.PermissionSet {
	v, _ := c.Locals(LocalPermissions).([]string)
	return entity.PermissionsFromStrings(v)
}

// RequireRole autoriza apenas os papéis listados. Usar DEPOIS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado"})
	}
}

// RequirePermission autoriza apenas quem carrega o token de capacidade.
// A checagem definitiva acontece de novo no caso de uso contra o registro
// durável; aqui corta cedo requisições claramente sem autoridade.
func RequirePermission(p entity.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetPermissions(c).Has(p) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado"})
		}
		return c.Next()
	}
}
