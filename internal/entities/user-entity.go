// Файл: internal/entities/user-entity.go
package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	FullName string `json:"full_name" db:"full_name"`
	Role     Role   `json:"role" db:"role"`
	IsActive bool   `json:"is_active" db:"is_active"`

	PasswordHash  string        `json:"-" db:"password_hash"`
	PasswordState PasswordState `json:"-" db:"must_change_password"`

	LastLogin         null.Time `json:"last_login" db:"last_login"`
	PasswordChangedAt null.Time `json:"password_changed_at" db:"password_changed_at"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

func (u *User) MustChangePassword() bool {
	return u.PasswordState.RequiresChange()
}
