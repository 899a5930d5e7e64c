package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/villa61pizzaria-cell/notarapp/internal/application/dto"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/entity"
	"github.com/villa61pizzaria-cell/notarapp/internal/domain/repository"
	"github.com/villa61pizzaria-cell/notarapp/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de conta: registro e autenticação.
//
// A checagem de credencial (senha/sessão) fica com o colaborador externo de
// auth; aqui o que decide o login é o status da conta, com mensagem distinta
// por tipo para o usuário saber se espera aprovação ou foi bloqueado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig

	// defaultFirmID é a contabilidade responsável atribuída a todo registro
	// business. Placeholder de tenant único: o registro não tem etapa de
	// escolha de escritório.
	defaultFirmID string
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, defaultFirmID string) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, defaultFirmID: defaultFirmID}
}

// Register cria uma conta em status pending. Falha com ErrDuplicateEmail se o
// email já existe (comparação exata) e com ErrInvalidRole para papel
// desconhecido ou par (role, subRole) irrepresentável. Contas admin nunca
// nascem por registro: DefaultPermissions as rejeita.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	perms, err := entity.DefaultPermissions(in.Role)
	if err != nil {
		return nil, err
	}
	subRole := in.SubRole
	if subRole == "" {
		// O registro sem cargo assume o cargo gestor do papel.
		if in.Role == entity.RoleBusiness {
			subRole = entity.SubRoleOwner
		} else {
			subRole = entity.SubRoleManager
		}
	}
	if !entity.ValidRoleSubRole(in.Role, subRole) {
		return nil, domain.ErrInvalidRole
	}

	now := time.Now()
	user := &entity.User{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		Role:        in.Role,
		SubRole:     subRole,
		Status:      entity.StatusPending,
		Permissions: perms,
		CompanyName: in.CompanyName,
		CNPJ:        in.CNPJ,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.IsBusiness() {
		user.AccountingFirmID = uc.defaultFirmID
	}

	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Authenticate resolve a conta pelo email e aplica o gate de status:
// pending e blocked são rejeitados na borda com erros distintos. Em caso de
// sucesso devolve o usuário e um JWT com papel e permissões nos claims.
func (uc *AuthUseCase) Authenticate(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	switch user.Status {
	case entity.StatusPending:
		return nil, domain.ErrPendingApproval
	case entity.StatusBlocked:
		return nil, domain.ErrBlocked
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.Permissions.Strings(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// ToUserResponse converte a entidade para a representação externa.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		SubRole:          u.SubRole,
		Status:           u.Status,
		Permissions:      u.Permissions.Strings(),
		AccountingFirmID: u.AccountingFirmID,
		CompanyName:      u.CompanyName,
		CNPJ:             u.CNPJ,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
