package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleCajero      = "cajero"
	RoleAlmacenista = "almacenista"
)

// User representa un usuario operador del sistema (cajero, almacenista, admin).
type User struct {
	ID           string
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	StatusID     string
	CreatedAt    time.Time
}
