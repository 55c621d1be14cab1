package entity

import "time"

// User es la credencial de acceso de una persona del hogar.
type User struct {
	ID           string
	Person       Person
	PasswordHash string
	CreatedAt    time.Time
}
