package domain

// Category labels tickets for reporting. Plain CRUD entity, the only
// invariant is name uniqueness.
type Category struct {
	ID          int64
	Name        string
	Description *string
}
