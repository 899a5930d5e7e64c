package entity

import (
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
)

// Permission é um token de capacidade. Conjunto fechado: a autoridade de um
// usuário para qualquer ação é exatamente o teste de pertencimento, sem
// fallback implícito por papel depois que as permissões foram atribuídas.
type Permission string

const (
	PermViewFinancials  Permission = "view_financials"  // ver gráficos e faturamento
	PermEditReceipts    Permission = "edit_receipts"    // editar valores e dados
	PermDeleteReceipts  Permission = "delete_receipts"  // excluir notas
	PermApproveReceipts Permission = "approve_receipts" // mudar status para processado/rejeitado
	PermManageUsers     Permission = "manage_users"     // criar/editar/excluir outros usuários
	PermUploadOnly      Permission = "upload_only"      // apenas enviar notas
)

// PermissionSet é o conjunto de permissões de um usuário.
type PermissionSet []Permission

// Has testa pertencimento no conjunto.
func (ps PermissionSet) Has(p Permission) bool {
	for _, v := range ps {
		if v == p {
			return true
		}
	}
	return false
}

// Strings devolve o conjunto como []string (persistência em text[]).
func (ps PermissionSet) Strings() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

// PermissionsFromStrings reconstrói o conjunto a partir de valores persistidos.
func PermissionsFromStrings(vals []string) PermissionSet {
	out := make(PermissionSet, len(vals))
	for i, v := range vals {
		out[i] = Permission(v)
	}
	return out
}

// DefaultPermissions deriva o conjunto padrão de um papel no registro.
// admin não deriva: recebe permissões explícitas no seed. Papel desconhecido
// falha imediatamente com ErrInvalidRole em vez de assumir um padrão.
func DefaultPermissions(role string) (PermissionSet, error) {
	switch role {
	case RoleAccounting:
		return PermissionSet{PermViewFinancials, PermEditReceipts, PermApproveReceipts}, nil
	case RoleBusiness:
		return PermissionSet{PermViewFinancials, PermEditReceipts}, nil
	}
	return nil, domain.ErrInvalidRole
}
