package entity

import "time"

// User es un usuario del sistema. Solo aporta identidad (actor de los
// movimientos); no hay roles ni autorización por recurso.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
