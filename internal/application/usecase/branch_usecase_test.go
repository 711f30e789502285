package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaanlabs/dukaan-api/internal/application/dto"
	"github.com/dukaanlabs/dukaan-api/internal/application/usecase"
	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memBranchRepo struct {
	byCode map[string]*entity.Branch
}

func (r *memBranchRepo) Create(b *entity.Branch) error {
	if _, ok := r.byCode[b.Code]; ok {
		return domain.ErrDuplicate
	}
	r.byCode[b.Code] = b
	return nil
}

func (r *memBranchRepo) GetByCode(code string) (*entity.Branch, error) {
	b, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (r *memBranchRepo) List() ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(r.byCode))
	for _, b := range r.byCode {
		out = append(out, b)
	}
	return out, nil
}

func (r *memBranchRepo) ListByCodes(codes []string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, code := range codes {
		if b, ok := r.byCode[code]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *memUserRepo) FindByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListStaff() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func newBranchFixture() (*usecase.BranchUseCase, *memBranchRepo, *memUserRepo) {
	branches := &memBranchRepo{byCode: map[string]*entity.Branch{
		"karachi-1": {Code: "karachi-1", Name: "Dukaan Karachi Saddar"},
		"lahore-1":  {Code: "lahore-1", Name: "Dukaan Lahore Liberty"},
	}}
	users := &memUserRepo{users: map[string]*entity.User{
		"u-manager": {ID: "u-manager", Role: entity.RoleManager, Scope: entity.OneBranch("karachi-1")},
		"u-admin":   {ID: "u-admin", Role: entity.RoleAdmin, Scope: entity.AllBranches()},
	}}
	return usecase.NewBranchUseCase(branches, users), branches, users
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear con código válido persiste; repetirlo devuelve ErrDuplicate.
func TestBranchCreate_CodigoNaturalUnico(t *testing.T) {
	uc, _, _ := newBranchFixture()
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.CreateBranchRequest{Code: "multan-1", Name: "Dukaan Multan"})
	require.NoError(t, err)
	assert.Equal(t, "multan-1", b.Code)

	_, err = uc.Create(ctx, dto.CreateBranchRequest{Code: "multan-1", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El código se normaliza a minúsculas y debe ser slug válido.
func TestBranchCreate_CodigoInvalido(t *testing.T) {
	uc, _, _ := newBranchFixture()
	ctx := context.Background()

	b, err := uc.Create(ctx, dto.CreateBranchRequest{Code: "  Multan-2 ", Name: "Dukaan Multan 2"})
	require.NoError(t, err)
	assert.Equal(t, "multan-2", b.Code)

	for _, code := range []string{"", "con espacios", "Mayúsculas!", "-empieza-con-guion"} {
		_, err := uc.Create(ctx, dto.CreateBranchRequest{Code: code, Name: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, code)
	}
}

// Asignar fija rol manager y ámbito de una sola sucursal.
func TestAssignManager_FijaRolYSucursal(t *testing.T) {
	uc, _, users := newBranchFixture()

	out, err := uc.AssignManager(context.Background(), "lahore-1", "u-manager")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.True(t, out.Scope.Allows("lahore-1"))
	assert.False(t, out.Scope.Allows("karachi-1"))

	persisted, _ := users.FindByID("u-manager")
	assert.True(t, persisted.Scope.Allows("lahore-1"))
}

// Un admin conserva rol y ámbito total al asignarlo: no se degrada.
func TestAssignManager_RolElevadoNoSeDegrada(t *testing.T) {
	uc, _, users := newBranchFixture()

	out, err := uc.AssignManager(context.Background(), "karachi-1", "u-admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.True(t, out.Scope.All())

	persisted, _ := users.FindByID("u-admin")
	assert.True(t, persisted.Scope.All())
}

// Desasignar quita la sucursal al manager que la tenía.
func TestUnassignManager_QuitaLaSucursalAsignada(t *testing.T) {
	uc, _, users := newBranchFixture()

	out, err := uc.UnassignManager(context.Background(), "karachi-1", "u-manager")
	require.NoError(t, err)
	assert.False(t, out.Scope.Allows("karachi-1"))

	persisted, _ := users.FindByID("u-manager")
	assert.False(t, persisted.Scope.Allows("karachi-1"))
}

// Desasignar a un admin o usuario con comodín se rechaza con ErrInvalidInput
// y no toca su ámbito.
func TestUnassignManager_RolElevadoRechazado(t *testing.T) {
	uc, _, users := newBranchFixture()

	_, err := uc.UnassignManager(context.Background(), "karachi-1", "u-admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	persisted, _ := users.FindByID("u-admin")
	assert.Equal(t, entity.RoleAdmin, persisted.Role)
	assert.True(t, persisted.Scope.All())
}

// Desasignar una sucursal que el manager no tiene no cambia nada.
func TestUnassignManager_OtraSucursalNoToca(t *testing.T) {
	uc, _, users := newBranchFixture()

	out, err := uc.UnassignManager(context.Background(), "lahore-1", "u-manager")
	require.NoError(t, err)
	assert.True(t, out.Scope.Allows("karachi-1"))

	persisted, _ := users.FindByID("u-manager")
	assert.True(t, persisted.Scope.Allows("karachi-1"))
}

// Usuario inexistente → ErrUserNotFound.
func TestUnassignManager_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newBranchFixture()

	_, err := uc.UnassignManager(context.Background(), "karachi-1", "u-nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
