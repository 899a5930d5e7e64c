package dto

import "time"

// RegisterRequest payload de registro de conta. Toda conta registrada
// nasce pending e passa pelo fluxo de aprovação antes de autenticar.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	SubRole     string `json:"sub_role"`
	CompanyName string `json:"company_name"`
	CNPJ        string `json:"cnpj"`
}

// LoginRequest payload de login. A checagem de credencial fica fora deste
// núcleo (colaborador externo de auth); aqui só o status da conta decide.
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse representação externa de um usuário.
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	SubRole          string    `json:"sub_role,omitempty"`
	Status           string    `json:"status"`
	Permissions      []string  `json:"permissions"`
	AccountingFirmID string    `json:"accounting_firm_id,omitempty"`
	CompanyName      string    `json:"company_name,omitempty"`
	CNPJ             string    `json:"cnpj,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateUserRequest criação direta de membro pela administração. Diferente
// do registro público, a conta nasce active, sem passar pela fila de
// aprovação, e com permissões explícitas.
type CreateUserRequest struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	SubRole          string   `json:"sub_role"`
	Permissions      []string `json:"permissions"`
	AccountingFirmID string   `json:"accounting_firm_id"`
	CompanyName      string   `json:"company_name"`
	CNPJ             string   `json:"cnpj"`
}

// UserPatch campos editáveis por administração. Ponteiros distinguem
// "não enviado" de "limpar".
type UserPatch struct {
	Name             *string  `json:"name"`
	SubRole          *string  `json:"sub_role"`
	Permissions      []string `json:"permissions"`
	AccountingFirmID *string  `json:"accounting_firm_id"`
	CompanyName      *string  `json:"company_name"`
	CNPJ             *string  `json:"cnpj"`
}

// DecisionRequest decisão de aprovação sobre uma conta pendente.
type DecisionRequest struct {
	Decision string `json:"decision"` // approve | reject
}
