package models

import "time"

// Student is a registered account. Accounts are created at signup and read
// at login; they are never updated or deleted.
type Student struct {
	ID           string    `json:"id" db:"id"`
	FullName     string    `json:"fullname" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicStudent is the account shape returned to clients, without the
// password hash.
type PublicStudent struct {
	ID       string `json:"_id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

func (s *Student) Public() PublicStudent {
	return PublicStudent{
		ID:       s.ID,
		FullName: s.FullName,
		Email:    s.Email,
	}
}
