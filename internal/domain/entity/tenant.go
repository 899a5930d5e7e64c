package entity

import "time"

// Planos de assinatura de um escritório contábil.
const (
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Status de cobrança do tenant.
const (
	TenantActive     = "active"
	TenantInactive   = "inactive"
	TenantDelinquent = "delinquent"
)

// Tenant representa a unidade de cobrança de um escritório contábil.
// Mutado exclusivamente por contas admin; os contadores (usersCount,
// storageUsedGB) são mantidos externamente, sem derivação automática
// a partir dos usuários.
type Tenant struct {
	ID            string
	Name          string
	Plan          string // starter, pro, enterprise
	Status        string // active, inactive, delinquent
	UsersCount    int
	StorageUsedGB float64
	JoinedAt      time.Time
	UpdatedAt     time.Time
}
