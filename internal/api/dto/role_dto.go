package dto

// CreateRoleRequest payload for new roles.
type CreateRoleRequest struct {
	Name string `json:"name"`
}

// RoleResponse is the external role representation.
type RoleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
