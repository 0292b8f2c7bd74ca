package models

import "time"

// User is an account record. PasswordHash is the bcrypt digest and must never
// reach a response payload; the httpapi layer builds its own views.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
