package domain

// User is the domain model for every account: customers, technicians and
// admins are distinguished only by their role reference.
type User struct {
	ID           int64
	Fullname     string
	Email        string
	PasswordHash string
	RoleID       int64
	RoleName     string
}

// Summary returns the external representation of the user. The password
// hash never leaves the service boundary.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Fullname: u.Fullname, Email: u.Email}
}

// UserSummary is the serializable subset of a user attached to tickets.
type UserSummary struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}
