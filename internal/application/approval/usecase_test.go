package approval_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/approval"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/receipts"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/infrastructure/memory"
)

// captureNotifier grava os eventos entregues, para inspeção nos testes.
type captureNotifier struct {
	mu     sync.Mutex
	events []receipts.Event
}

func (n *captureNotifier) Notify(ctx context.Context, ev receipts.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *captureNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.Kind
	}
	return out
}

func seedUser(t *testing.T, users *memory.UserRepo, id, role, subRole, status string) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID: id, Name: "User " + id, Email: id + "@x.com",
		Role: role, SubRole: subRole, Status: status,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, users.Create(u))
	return u
}

func TestPendingFor_VisibilidadePorPapel(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	seedUser(t, users, "biz-pending", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusPending)
	seedUser(t, users, "acc-pending", entity.RoleAccounting, entity.SubRoleManager, entity.StatusPending)
	seedUser(t, users, "asst-pending", entity.RoleAccounting, entity.SubRoleAssistant, entity.StatusPending)
	seedUser(t, users, "biz-active", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusActive)

	// admin vê só contadores pendentes
	out, err := uc.PendingFor(entity.RoleAdmin)
	require.NoError(t, err)
	ids := idsOf(out)
	assert.ElementsMatch(t, []string{"acc-pending", "asst-pending"}, ids)

	// contador vê business pendentes e assistentes pendentes, não o gestor
	out, err = uc.PendingFor(entity.RoleAccounting)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"biz-pending", "asst-pending"}, idsOf(out))

	// business não vê fila nenhuma
	out, err = uc.PendingFor(entity.RoleBusiness)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func idsOf(list []*dto.UserResponse) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.ID
	}
	return out
}

func TestDecide_AprovarAtiva(t *testing.T) {
	users := memory.NewUserRepository()
	notifier := &captureNotifier{}
	uc := approval.New(users, notifier, zerolog.Nop())

	seedUser(t, users, "biz", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusPending)

	out, err := uc.Decide(context.Background(), entity.RoleAccounting, "biz", approval.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, out.Status)

	stored, err := users.GetByID("biz")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, stored.Status)

	// entrega assíncrona
	assert.Eventually(t, func() bool {
		for _, k := range notifier.kinds() {
			if k == "user_approved" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestDecide_RejeitarBloqueia(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	seedUser(t, users, "acc", entity.RoleAccounting, entity.SubRoleManager, entity.StatusPending)

	out, err := uc.Decide(context.Background(), entity.RoleAdmin, "acc", approval.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBlocked, out.Status)
}

func TestDecide_SemAlcada(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	// admin não tem alçada sobre business
	seedUser(t, users, "biz", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusPending)
	_, err := uc.Decide(context.Background(), entity.RoleAdmin, "biz", approval.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// contador não tem alçada sobre o gestor de outro escritório
	seedUser(t, users, "acc", entity.RoleAccounting, entity.SubRoleManager, entity.StatusPending)
	_, err = uc.Decide(context.Background(), entity.RoleAccounting, "acc", approval.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// business nunca decide
	_, err = uc.Decide(context.Background(), entity.RoleBusiness, "biz", approval.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDecide_ContaNaoPendente(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	seedUser(t, users, "biz", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusActive)

	_, err := uc.Decide(context.Background(), entity.RoleAccounting, "biz", approval.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"aprovar conta já ativa é transição ilegal, não falta de alçada")
}

func TestDecide_AlvoInexistente(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	_, err := uc.Decide(context.Background(), entity.RoleAdmin, "ghost", approval.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_ToggleActiveBlocked(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	seedUser(t, users, "biz", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusActive)

	out, err := uc.SetStatus(context.Background(), entity.RoleAccounting, "biz", entity.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusBlocked, out.Status)

	// bloqueio é reversível
	out, err = uc.SetStatus(context.Background(), entity.RoleAccounting, "biz", entity.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, out.Status)
}

func TestSetStatus_BlockedNuncaVoltaPending(t *testing.T) {
	users := memory.NewUserRepository()
	uc := approval.New(users, nil, zerolog.Nop())

	seedUser(t, users, "biz", entity.RoleBusiness, entity.SubRoleOwner, entity.StatusBlocked)

	_, err := uc.SetStatus(context.Background(), entity.RoleAccounting, "biz", entity.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMaquinaDeEstadosDeConta(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.StatusPending, entity.StatusActive, true},
		{entity.StatusPending, entity.StatusBlocked, true},
		{entity.StatusActive, entity.StatusBlocked, true},
		{entity.StatusBlocked, entity.StatusActive, true},
		{entity.StatusBlocked, entity.StatusPending, false},
		{entity.StatusActive, entity.StatusPending, false},
		{entity.StatusActive, entity.StatusActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, entity.CanTransitionStatus(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
