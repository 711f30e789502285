package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
	RoleManager = "manager"
)

// ElevatedRole indica si el rol tiene acceso a todas las sucursales.
func ElevatedRole(role string) bool {
	return role == RoleAdmin || role == RoleOwner
}

// User representa un usuario del sistema. Scope es el ámbito de sucursales:
// todas (admin/owner) o exactamente una (manager).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, owner, manager
	Scope        BranchScope
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
