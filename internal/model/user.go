package model

import (
	"time"
)

type User struct {
	ID                 string    `db:"id"`
	Username           string    `db:"username"`
	Email              string    `db:"email"`
	PasswordHash       string    `db:"password_hash"`
	Inactive           bool      `db:"inactive"`
	ActivationToken    *string   `db:"activation_token"`
	PasswordResetToken *string   `db:"password_reset_token"`
	Image              *string   `db:"image"`
	CreatedAt          time.Time `db:"created_at"`
}

func (u *User) IsActive() bool {
	return !u.Inactive
}

func (u *User) HasImage() bool {
	return u.Image != nil && *u.Image != ""
}
