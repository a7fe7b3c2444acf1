// Package models holds plain data structs shared by repositories and
// services on the server side.
package models

import "time"

// User is an account record. Email is stored lower-cased and is unique
// across all accounts. PasswordHash is the bcrypt-encoded credential; the
// plaintext password is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
