// Package approval implementa o fluxo hierárquico de aprovação de contas:
// o admin da plataforma aprova contadores; contadores aprovam clientes
// business (e assistentes do próprio escritório).
package approval

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/auth"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// Decisões possíveis sobre uma conta pendente.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// UseCase aplica visibilidade e transições de status de conta.
type UseCase struct {
	userRepo repository.UserRepository
	notifier receipts.Notifier
	log      zerolog.Logger
}

// New constrói o motor de aprovação. notifier pode ser nil (sem canal).
func New(userRepo repository.UserRepository, notifier receipts.Notifier, log zerolog.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, notifier: notifier, log: log}
}

// PendingFor devolve as contas pendentes visíveis e acionáveis pelo ator:
//   - admin: pendentes com papel accounting;
//   - accounting: pendentes business OU com cargo assistant;
//   - demais papéis: vazio.
//
// A visibilidade do contador não é estreitada por AccountingFirmID; ver a
// questão em aberto registrada no DESIGN.md.
func (uc *UseCase) PendingFor(actorRole string) ([]*dto.UserResponse, error) {
	pending, err := uc.userRepo.List(repository.UserFilter{Status: entity.StatusPending})
	if err != nil {
		return nil, err
	}
	out := []*dto.UserResponse{}
	for _, u := range pending {
		if visibleTo(actorRole, u) {
			out = append(out, auth.ToUserResponse(u))
		}
	}
	return out, nil
}

// Decide aplica approve/reject sobre uma conta pendente. Falha com
// ErrForbidden se o ator não tem alçada sobre o papel do alvo e com
// ErrInvalidTransition se a conta não está mais pendente.
func (uc *UseCase) Decide(ctx context.Context, actorRole, targetID, decision string) (*dto.UserResponse, error) {
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if !hasStanding(actorRole, target) {
		return nil, domain.ErrForbidden
	}

	var next string
	switch decision {
	case DecisionApprove:
		next = entity.StatusActive
	case DecisionReject:
		next = entity.StatusBlocked
	default:
		return nil, domain.ErrInvalidTransition
	}
	return uc.transition(ctx, target, actorRole, next)
}

// SetStatus alterna active↔blocked em qualquer momento, por um aprovador com
// alçada. Bloqueio não é permanente por decisão de projeto; blocked→pending
// nunca acontece.
func (uc *UseCase) SetStatus(ctx context.Context, actorRole, targetID, status string) (*dto.UserResponse, error) {
	target, err := uc.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if !hasStanding(actorRole, target) {
		return nil, domain.ErrForbidden
	}
	return uc.transition(ctx, target, actorRole, status)
}

func (uc *UseCase) transition(ctx context.Context, target *entity.User, actorRole, next string) (*dto.UserResponse, error) {
	if !entity.CanTransitionStatus(target.Status, next) {
		return nil, domain.ErrInvalidTransition
	}
	prev := target.Status
	target.Status = next
	target.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(target); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("user_id", target.ID).
		Str("from", prev).
		Str("to", next).
		Str("actor_role", actorRole).
		Msg("status de conta alterado")

	if uc.notifier != nil && next == entity.StatusActive {
		ev := receipts.Event{Kind: "user_approved", UserID: target.ID, Detail: target.Email}
		go func() {
			if err := uc.notifier.Notify(context.WithoutCancel(ctx), ev); err != nil {
				uc.log.Warn().Err(err).Str("user_id", ev.UserID).Msg("notificação de aprovação falhou")
			}
		}()
	}
	return auth.ToUserResponse(target), nil
}

// visibleTo é a regra de visibilidade de pendentes por papel do ator.
func visibleTo(actorRole string, target *entity.User) bool {
	if target.Status != entity.StatusPending {
		return false
	}
	return hasStanding(actorRole, target)
}

// hasStanding diz se o ator tem alçada hierárquica sobre o alvo.
func hasStanding(actorRole string, target *entity.User) bool {
	switch actorRole {
	case entity.RoleAdmin:
		return target.Role == entity.RoleAccounting
	case entity.RoleAccounting:
		return target.Role == entity.RoleBusiness || target.SubRole == entity.SubRoleAssistant
	}
	return false
}
