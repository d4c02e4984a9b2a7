package models

// User represents an assignable agent (teleoperator or confirmateur).
type User struct {
	ID       string
	Name     string
	Role     string
	Platform string
}

// Agent role constants
const (
	RoleTeleoperator = "teleoperator"
	RoleConfirmateur = "confirmateur"
)
