package dto

import "time"

// CreateBranchRequest body para POST /api/branches (solo admin).
type CreateBranchRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// BranchResponse sucursal serializada.
type BranchResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ManagerInfo encargado asignado a una sucursal.
type ManagerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// BranchWithManagers sucursal + encargados (vista de administración).
type BranchWithManagers struct {
	BranchResponse
	Managers []ManagerInfo `json:"managers"`
}

// AssignManagerRequest body para PATCH /api/branches/:code/assign|unassign.
type AssignManagerRequest struct {
	UserID string `json:"userId"`
}

// AssignManagerResponse estado resultante del usuario tras la asignación.
type AssignManagerResponse struct {
	Ok   bool `json:"ok"`
	User struct {
		ID       string `json:"id"`
		Role     string `json:"role"`
		Branches string `json:"branches"`
	} `json:"user"`
}
