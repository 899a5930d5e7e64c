// seed popula o banco com dados de demonstração: as contas iniciais, os
// tenants de exemplo e o catálogo padrão de categorias do escritório gestor.
//
// Uso: go run ./cmd/seed
// Idempotente: registros já existentes são ignorados.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/postgres"
	"github.com/villa61pizzaria-cell/notarapp/pkg/config"
	"github.com/villa61pizzaria-cell/notarapp/pkg/logger"
)

// IDs fixos para que DEFAULT_FIRM_ID e os vínculos entre contas sejam
// estáveis entre execuções.
const (
	idOwner     = "00000000-0000-0000-0000-0000000000a1"
	idEmployee  = "00000000-0000-0000-0000-0000000000a2"
	idManager   = "00000000-0000-0000-0000-0000000000a3"
	idAssistant = "00000000-0000-0000-0000-0000000000a4"
	idRoot      = "00000000-0000-0000-0000-0000000000ff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)

	now := time.Now()

	users := []*entity.User{
		{
			ID: idOwner, Name: "Carlos Dono", Email: "dono@empresa.com",
			Role: entity.RoleBusiness, SubRole: entity.SubRoleOwner, Status: entity.StatusActive,
			Permissions: entity.PermissionSet{
				entity.PermViewFinancials, entity.PermEditReceipts, entity.PermManageUsers,
			},
			AccountingFirmID: idManager,
			CompanyName:      "Empresa Exemplo LTDA", CNPJ: "12345678000199",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: idEmployee, Name: "João Funcionário", Email: "func@empresa.com",
			Role: entity.RoleBusiness, SubRole: entity.SubRoleEmployee, Status: entity.StatusActive,
			Permissions:      entity.PermissionSet{entity.PermUploadOnly},
			AccountingFirmID: idManager,
			CompanyName:      "Empresa Exemplo LTDA", CNPJ: "12345678000199",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: idManager, Name: "Ana Gestora", Email: "gestor@contabil.com",
			Role: entity.RoleAccounting, SubRole: entity.SubRoleManager, Status: entity.StatusActive,
			Permissions: entity.PermissionSet{
				entity.PermViewFinancials, entity.PermEditReceipts, entity.PermDeleteReceipts,
				entity.PermApproveReceipts, entity.PermManageUsers,
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: idAssistant, Name: "Pedro Assistente", Email: "pendente@contabil.com",
			Role: entity.RoleAccounting, SubRole: entity.SubRoleAssistant, Status: entity.StatusPending,
			Permissions: entity.PermissionSet{
				entity.PermEditReceipts, entity.PermApproveReceipts,
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: idRoot, Name: "Super Admin", Email: "root@notar.com",
			Role: entity.RoleAdmin, Status: entity.StatusActive,
			Permissions: entity.PermissionSet{
				entity.PermManageUsers, entity.PermViewFinancials,
			},
			CreatedAt: now, UpdatedAt: now,
		},
	}

	for _, u := range users {
		if existing, err := userRepo.GetByEmail(u.Email); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("consultar usuário")
		} else if existing != nil {
			continue
		}
		if err := userRepo.Create(u); err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("criar usuário")
		}
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("usuário criado")
	}

	tenants := []*entity.Tenant{
		{Name: "Escritório Contábil Silva", Plan: entity.PlanPro, Status: entity.TenantActive, UsersCount: 15, StorageUsedGB: 12.4, JoinedAt: mustDate("2024-01-10")},
		{Name: "Alpha Tech & Contabilidade", Plan: entity.PlanEnterprise, Status: entity.TenantActive, UsersCount: 45, StorageUsedGB: 89.2, JoinedAt: mustDate("2023-11-05")},
		{Name: "Gestão Ágil", Plan: entity.PlanStarter, Status: entity.TenantDelinquent, UsersCount: 2, StorageUsedGB: 0.5, JoinedAt: mustDate("2024-02-20")},
		{Name: "Santos e Associados", Plan: entity.PlanPro, Status: entity.TenantActive, UsersCount: 8, StorageUsedGB: 5.1, JoinedAt: mustDate("2023-12-12")},
		{Name: "Auditores Prime", Plan: entity.PlanEnterprise, Status: entity.TenantActive, UsersCount: 22, StorageUsedGB: 45.0, JoinedAt: mustDate("2023-10-01")},
	}

	existing, err := tenantRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("listar tenants")
	}
	if len(existing) == 0 {
		for _, t := range tenants {
			t.ID = uuid.NewString()
			t.UpdatedAt = now
			if err := tenantRepo.Create(t); err != nil {
				log.Fatal().Err(err).Str("name", t.Name).Msg("criar tenant")
			}
			log.Info().Str("name", t.Name).Msg("tenant criado")
		}
	}

	// Catálogo padrão do escritório gestor; Create com ON CONFLICT absorve
	// repetições.
	for _, name := range entity.DefaultCategories {
		cat := &entity.Category{
			ID:        uuid.NewString(),
			FirmID:    idManager,
			Name:      name,
			AdHoc:     false,
			CreatedAt: now,
		}
		if err := categoryRepo.Create(cat); err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("criar categoria")
		}
	}
	log.Info().Int("categories", len(entity.DefaultCategories)).Msg("catálogo padrão garantido")

	log.Info().Msg("seed concluído")
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
