package domain

import "errors"

// Erros de domínio (sem dependências externas). A camada HTTP traduz cada um
// para status e mensagem próprios; o motor nunca os absorve silenciosamente.
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrDuplicateEmail     = errors.New("email já cadastrado")
	ErrPendingApproval    = errors.New("conta aguardando aprovação")
	ErrBlocked            = errors.New("acesso bloqueado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidTransition  = errors.New("transição de status inválida")
	ErrInvalidRole        = errors.New("papel de usuário inválido")
	ErrExtractionFailed   = errors.New("extração do documento falhou")
	ErrStorageUnavailable = errors.New("armazenamento indisponível")
)
