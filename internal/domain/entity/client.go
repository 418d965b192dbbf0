package entity

import (
	"strings"
	"time"
)

// Client representa un cliente del negocio (solo lectura para facturación).
type Client struct {
	ID         string
	BusinessID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	CreatedAt  time.Time
}

// FullName devuelve "FirstName LastName" sin espacios sobrantes.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
