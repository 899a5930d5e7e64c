package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/auth"
	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
)

// UserUseCase administração de contas: criação direta, listagem, edição e
// exclusão de membros. Toda operação exige manage_users do ator — a
// permissão existe para ser verificada, não só declarada.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso com o porto de persistência.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create cria um membro direto da equipe. A conta nasce active, sem passar
// pela fila de aprovação; permissões ausentes caem no padrão do papel.
// Contas admin continuam sendo só de seed.
func (uc *UserUseCase) Create(actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.Permissions.Has(entity.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	if in.Role == entity.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}
	if !entity.ValidRoleSubRole(in.Role, in.SubRole) {
		return nil, domain.ErrInvalidRole
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	perms := entity.PermissionsFromStrings(in.Permissions)
	if len(perms) == 0 {
		perms, err = entity.DefaultPermissions(in.Role)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	user := &entity.User{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Email:            in.Email,
		Role:             in.Role,
		SubRole:          in.SubRole,
		Status:           entity.StatusActive,
		Permissions:      perms,
		AccountingFirmID: in.AccountingFirmID,
		CompanyName:      in.CompanyName,
		CNPJ:             in.CNPJ,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuários pelo filtro.
func (uc *UserUseCase) List(actor *entity.User, filter repository.UserFilter) ([]*dto.UserResponse, error) {
	if !actor.Permissions.Has(entity.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = auth.ToUserResponse(u)
	}
	return out, nil
}

// GetByID obtém um usuário por id.
func (uc *UserUseCase) GetByID(actor *entity.User, id string) (*dto.UserResponse, error) {
	if !actor.Permissions.Has(entity.PermManageUsers) && actor.ID != id {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Update funde um patch administrativo no usuário. Status não passa por
// aqui: transições de status pertencem ao motor de aprovação.
func (uc *UserUseCase) Update(actor *entity.User, id string, patch dto.UserPatch) (*dto.UserResponse, error) {
	if !actor.Permissions.Has(entity.PermManageUsers) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.SubRole != nil {
		if !entity.ValidRoleSubRole(user.Role, *patch.SubRole) {
			return nil, domain.ErrInvalidRole
		}
		user.SubRole = *patch.SubRole
	}
	if patch.Permissions != nil {
		user.Permissions = entity.PermissionsFromStrings(patch.Permissions)
	}
	if patch.AccountingFirmID != nil {
		user.AccountingFirmID = *patch.AccountingFirmID
	}
	if patch.CompanyName != nil {
		user.CompanyName = *patch.CompanyName
	}
	if patch.CNPJ != nil {
		user.CNPJ = *patch.CNPJ
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete remove um membro da equipe. Contas admin são seed e não saem por
// aqui.
func (uc *UserUseCase) Delete(actor *entity.User, id string) error {
	if !actor.Permissions.Has(entity.PermManageUsers) {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}
