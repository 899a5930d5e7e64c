package entity

import "time"

// Papéis válidos para User.
const (
	RoleBusiness   = "business"
	RoleAccounting = "accounting"
	RoleAdmin      = "admin"
)

// SubRoles válidos, condicionados ao papel: o significado de um cargo depende
// do papel que o carrega, então a validação é feita em pares (role, subRole).
const (
	SubRoleOwner     = "owner"
	SubRoleEmployee  = "employee"
	SubRoleManager   = "manager"
	SubRoleAssistant = "assistant"
)

// Status de conta. Toda conta auto-registrada nasce pending; nunca active.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// validSubRoles mapeia cada papel para os cargos que ele admite.
// admin não carrega cargo; combinações fora da tabela são irrepresentáveis
// via NewUser.
var validSubRoles = map[string]map[string]bool{
	RoleBusiness:   {SubRoleOwner: true, SubRoleEmployee: true},
	RoleAccounting: {SubRoleManager: true, SubRoleAssistant: true},
	RoleAdmin:      {},
}

// ValidRoleSubRole indica se o par (role, subRole) é representável.
// subRole vazio é aceito para qualquer papel válido.
func ValidRoleSubRole(role, subRole string) bool {
	allowed, ok := validSubRoles[role]
	if !ok {
		return false
	}
	if subRole == "" {
		return true
	}
	return allowed[subRole]
}

// User representa uma conta do sistema: identidade + acesso.
type User struct {
	ID               string
	Name             string
	Email            string
	Role             string // business, accounting, admin
	SubRole          string // condicionado ao Role; vazio para admin
	Status           string // pending, active, blocked
	Permissions      PermissionSet
	AccountingFirmID string // business: contabilidade responsável; vazio nos demais
	CompanyName      string
	CNPJ             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsBusiness indica se a conta pertence a uma empresa cliente.
func (u *User) IsBusiness() bool { return u.Role == RoleBusiness }

// IsAccounting indica se a conta pertence a um escritório contábil.
func (u *User) IsAccounting() bool { return u.Role == RoleAccounting }

// IsAdmin indica se a conta é o administrador da plataforma (sempre seed, nunca registro).
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanTransitionStatus valida a máquina de estados da conta:
// pending→active, pending→blocked e active↔blocked. blocked nunca volta a pending.
func CanTransitionStatus(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusBlocked
	case StatusActive:
		return to == StatusBlocked
	case StatusBlocked:
		return to == StatusActive
	}
	return false
}
