package entity

import "time"

// User representa un usuario autenticable (dueño de un negocio).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
