package entity

import "time"

// Client representa un cliente. Las ventas lo referencian solo por ID.
type Client struct {
	ID        string
	Name      string
	Email     string // único
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientFilter búsqueda por nombre o email (sin distinguir mayúsculas).
type ClientFilter struct {
	Search string
	Limit  int
	Offset int
}
