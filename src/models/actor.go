package models

// Actor identifies who performs an operation, taken from the JWT claims.
type Actor struct {
	UserID    string
	Email     string
	Role      string
	RefID     string // employee profile id for role employee
	RequestID string
}
