package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/approval"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/auth"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/usecase"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	TenantUC   *usecase.TenantUseCase
	CategoryUC *usecase.CategoryUseCase
	ApprovalUC *approval.UseCase
	ReceiptUC  *receipts.UseCase
	Users      repository.UserRepository
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuários (protegido, manage_users)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.Users)
	users.Post("/", RequirePermission(entity.PermManageUsers), userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Patch("/:id", RequirePermission(entity.PermManageUsers), userHandler.Update)
	users.Delete("/:id", RequirePermission(entity.PermManageUsers), userHandler.Delete)

	// Aprovações (protegido, admin ou accounting; a hierarquia fina
	// é decidida no caso de uso)
	approvals := protected.Group("/approvals", RequireRole(entity.RoleAdmin, entity.RoleAccounting))
	approvalHandler := NewApprovalHandler(deps.ApprovalUC)
	approvals.Get("/pending", approvalHandler.Pending)
	approvals.Post("/:id/decide", approvalHandler.Decide)
	approvals.Post("/:id/status", approvalHandler.SetStatus)

	// Tenants (protegido, admin)
	tenants := protected.Group("/tenants", RequireRole(entity.RoleAdmin))
	tenantHandler := NewTenantHandler(deps.TenantUC, deps.Users)
	tenants.Get("/", tenantHandler.List)
	tenants.Patch("/:id", tenantHandler.Update)

	// Notas (protegido; a permissão por operação é checada no caso de uso
	// contra o registro durável, o middleware só corta cedo)
	receiptsGroup := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.Users)
	receiptsGroup.Post("/", receiptHandler.Submit)
	receiptsGroup.Get("/", receiptHandler.List)
	receiptsGroup.Post("/review", RequirePermission(entity.PermApproveReceipts), receiptHandler.BulkReview)
	receiptsGroup.Get("/checklist", receiptHandler.Checklist)
	receiptsGroup.Get("/:id", receiptHandler.Get)
	receiptsGroup.Post("/:id/confirm", receiptHandler.Confirm)
	receiptsGroup.Post("/:id/review", RequirePermission(entity.PermApproveReceipts), receiptHandler.Review)
	receiptsGroup.Patch("/:id", RequirePermission(entity.PermEditReceipts), receiptHandler.Update)
	receiptsGroup.Delete("/:id", RequirePermission(entity.PermDeleteReceipts), receiptHandler.Delete)

	// Categorias (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Users)
	categories.Get("/", categoryHandler.List)
}
