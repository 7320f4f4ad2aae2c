package domain

// Symbolic role names. The roles table is seeded with exactly these three;
// authorization checks compare against the name, never the row id.
const (
	RoleAdmin      = "Admin"
	RoleTechnician = "Technician"
	RoleCustomer   = "Customer"
)

// Role groups users under a named permission level.
type Role struct {
	ID   int64
	Name string
}
