package dto

// UpdateUserRequest is a partial update; absent fields stay untouched.
type UpdateUserRequest struct {
	Fullname *string `json:"fullname"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleID   *int64  `json:"roleId"`
}
