package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaanlabs/dukaan-api/internal/domain"
	"github.com/dukaanlabs/dukaan-api/internal/domain/entity"
	apphttp "github.com/dukaanlabs/dukaan-api/internal/interfaces/http"
)

// fakeUserRepo devuelve el ámbito "vigente" de un usuario, simulando lo que el
// middleware relee de la DB en cada petición de manager.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) ListStaff() ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

// buildScopeApp arma una ruta protegida por auth + ámbito de sucursal que
// responde con la sucursal objetivo resuelta.
func buildScopeApp(repo *fakeUserRepo) *fiber.App {
	app := fiber.New()
	app.Get("/scoped",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.BranchScopeMiddleware(repo, zerolog.Nop()),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"target": apphttp.GetBranchTarget(c)})
		},
	)
	return app
}

func managerRepo(scope entity.BranchScope) *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Role: entity.RoleManager, Scope: scope},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BranchScopeMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Manager asignado a karachi-1 opera su propia sucursal → 200.
func TestBranchScope_ManagerEnSuSucursal(t *testing.T) {
	app := buildScopeApp(managerRepo(entity.OneBranch("karachi-1")))
	resp := doGet(t, app, "/scoped?branchId=karachi-1", tokenFor(t, "manager", "karachi-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Manager de karachi-1 intenta operar lahore-1 → 403 FORBIDDEN_BRANCH.
func TestBranchScope_ManagerFueraDeSuSucursal(t *testing.T) {
	app := buildScopeApp(managerRepo(entity.OneBranch("karachi-1")))
	resp := doGet(t, app, "/scoped?branchId=lahore-1", tokenFor(t, "manager", "karachi-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// El ámbito vigente sale de la DB, no del token: un manager reasignado opera
// su nueva sucursal sin re-login, y pierde la anterior.
func TestBranchScope_ReasignacionSurteEfectoSinRelogin(t *testing.T) {
	repo := managerRepo(entity.OneBranch("lahore-1")) // DB ya dice lahore-1
	app := buildScopeApp(repo)
	token := tokenFor(t, "manager", "karachi-1") // el token aún dice karachi-1

	resp := doGet(t, app, "/scoped?branchId=lahore-1", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "la nueva sucursal debe permitirse")

	resp2 := doGet(t, app, "/scoped?branchId=karachi-1", token)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode, "la anterior debe negarse")
}

// Admin con comodín puede operar cualquier sucursal sin consulta a DB.
func TestBranchScope_AdminCualquierSucursal(t *testing.T) {
	app := buildScopeApp(&fakeUserRepo{users: map[string]*entity.User{}})
	resp := doGet(t, app, "/scoped?branchId=lahore-1", tokenFor(t, "admin", "*"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// "all" agrega todas las sucursales: permitido a admin/owner, con objetivo
// vacío para que los repos no filtren por sucursal.
func TestBranchScope_AllSoloRolesElevados(t *testing.T) {
	app := buildScopeApp(managerRepo(entity.OneBranch("karachi-1")))

	resp := doGet(t, app, "/scoped?branchId=all", tokenFor(t, "admin", "*"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2 := doGet(t, app, "/scoped?branchId=all", tokenFor(t, "manager", "karachi-1"))
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode, "manager no puede agregar todas")
}

// Sin branchId en params, query ni body → 400 MISSING_BRANCH.
func TestBranchScope_SinBranchId_Retorna400(t *testing.T) {
	app := buildScopeApp(managerRepo(entity.OneBranch("karachi-1")))
	resp := doGet(t, app, "/scoped", tokenFor(t, "manager", "karachi-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Manager sin sucursal asignada (ámbito vacío) no puede operar ninguna.
func TestBranchScope_ManagerSinSucursal(t *testing.T) {
	app := buildScopeApp(managerRepo(entity.NoBranches()))
	resp := doGet(t, app, "/scoped?branchId=karachi-1", tokenFor(t, "manager", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Si la DB no responde, el middleware cae a los claims del token en lugar de
// negar el servicio.
func TestBranchScope_FallbackAClaimsSiDBFalla(t *testing.T) {
	// Repo vacío: FindByID falla para cualquier usuario.
	app := buildScopeApp(&fakeUserRepo{users: map[string]*entity.User{}})
	resp := doGet(t, app, "/scoped?branchId=karachi-1", tokenFor(t, "manager", "karachi-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
