package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	"github.com/dukaanlabs/dukaan-api/internal/domain/repository"
)

var branchCodePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// BranchUseCase administración de sucursales y asignación de encargados.
type BranchUseCase struct {
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branchRepo repository.BranchRepository, userRepo repository.UserRepository) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo, userRepo: userRepo}
}

// Create registra una sucursal nueva. El código es llave natural en minúsculas
// con guiones (ej. "karachi-1") y no puede repetirse.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*entity.Branch, error) {
	code := strings.ToLower(strings.TrimSpace(in.Code))
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" || !branchCodePattern.MatchString(code) {
		return nil, domain.ErrInvalidInput
	}

	branch := &entity.Branch{
		Code:    code,
		Name:    name,
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// ListForScope devuelve las sucursales visibles para el ámbito del usuario:
// todas para roles elevados, solo la asignada para managers. El ámbito se
// relee de la DB para que una reasignación surta efecto sin re-login.
func (uc *BranchUseCase) ListForScope(ctx context.Context, userID string, tokenScope entity.BranchScope) ([]*entity.Branch, error) {
	scope := tokenScope
	if user, err := uc.userRepo.FindByID(userID); err == nil {
		scope = user.Scope
	}

	if scope.All() {
		return uc.branchRepo.List()
	}
	code := scope.Code()
	if code == "" {
		return []*entity.Branch{}, nil
	}
	return uc.branchRepo.ListByCodes([]string{code})
}

// ListWithManagers devuelve todas las sucursales con sus encargados asignados
// (vista de administración).
func (uc *BranchUseCase) ListWithManagers(ctx context.Context) ([]dto.BranchWithManagers, error) {
	branches, err := uc.branchRepo.List()
	if err != nil {
		return nil, err
	}
	staff, err := uc.userRepo.ListStaff()
	if err != nil {
		return nil, err
	}

	byBranch := make(map[string][]dto.ManagerInfo)
	for _, u := range staff {
		if u.Scope.All() {
			continue
		}
		code := u.Scope.Code()
		if code == "" {
			continue
		}
		byBranch[code] = append(byBranch[code], dto.ManagerInfo{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}

	out := make([]dto.BranchWithManagers, 0, len(branches))
	for _, b := range branches {
		row := dto.BranchWithManagers{
			BranchResponse: dto.BranchResponse{
				Code:      b.Code,
				Name:      b.Name,
				Address:   b.Address,
				Phone:     b.Phone,
				CreatedAt: b.CreatedAt,
				UpdatedAt: b.UpdatedAt,
			},
			Managers: byBranch[b.Code],
		}
		if row.Managers == nil {
			row.Managers = []dto.ManagerInfo{}
		}
		out = append(out, row)
	}
	return out, nil
}

// AssignManager ata un usuario a la sucursal. Los roles elevados conservan su
// rol y ámbito total; a los demás se les fija rol manager y ámbito de una
// sucursal.
func (uc *BranchUseCase) AssignManager(ctx context.Context, branchCode, userID string) (*entity.User, error) {
	if branchCode == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.branchRepo.GetByCode(branchCode); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if entity.ElevatedRole(user.Role) {
		// Admin y owner ya ven todas las sucursales; no se degradan.
		return user, nil
	}
	user.Role = entity.RoleManager
	user.Scope = entity.OneBranch(branchCode)
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UnassignManager desata al usuario de la sucursal si estaba asignado a ella.
// Los roles elevados no son desasignables: su ámbito total no depende de una
// sucursal en particular.
func (uc *BranchUseCase) UnassignManager(ctx context.Context, branchCode, userID string) (*entity.User, error) {
	if branchCode == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if entity.ElevatedRole(user.Role) {
		return nil, domain.ErrInvalidInput
	}
	if user.Scope.Allows(branchCode) && !user.Scope.All() {
		user.Scope = entity.NoBranches()
		if err := uc.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return user, nil
}
