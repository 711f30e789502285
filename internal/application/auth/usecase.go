package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
	"github.com/dukaanlabs/dukaan-api/pkg/jwt"
)

// DefaultManagerBranch sucursal asignada a managers registrados sin sucursal.
const DefaultManagerBranch = "main"

// UseCase registro y login con bcrypt y emisión de JWT.
type UseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	jwtExpMins int
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpMins int) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtExpMins: jwtExpMins,
	}
}

// Register crea un usuario. Los roles elevados (admin/owner) reciben ámbito
// total; los managers quedan atados a la sucursal indicada o a "main".
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleManager
	}
	if role != entity.RoleAdmin && role != entity.RoleOwner && role != entity.RoleManager {
		return nil, domain.ErrInvalidInput
	}

	var scope entity.BranchScope
	if entity.ElevatedRole(role) {
		scope = entity.AllBranches()
	} else {
		branch := strings.TrimSpace(in.Branch)
		if branch == "" || branch == entity.WildcardScope {
			branch = DefaultManagerBranch
		}
		scope = entity.OneBranch(branch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Username,
		Role:         role,
		Scope:        scope,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica credenciales y emite el token. Devuelve ErrUnauthorized
// tanto para email desconocido como para contraseña incorrecta.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		if err == domain.ErrUserNotFound || err == domain.ErrNotFound {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Role, user.Scope.String(), uc.jwtIssuer, uc.jwtExpMins)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
