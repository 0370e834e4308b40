package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa una cuenta de la aplicación de asistencia.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; vacío para cuentas importadas sin credencial
	Role         string // admin, employee
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin informa si la cuenta tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEmployee
}
