package models

// User is a seeded account. Passwords are stored and compared in plaintext.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // never serialized
}
