package dto

// CreateUserDTO - создание учётной записи администратором с временным паролем.
type CreateUserDTO struct {
	Username          string `json:"username" validate:"notblank,max=64"`
	Email             string `json:"email" validate:"required,email"`
	FullName          string `json:"full_name" validate:"notblank"`
	Role              string `json:"role" validate:"account_role"`
	TemporaryPassword string `json:"temporary_password" validate:"required"`
}

type UpdateUserDTO struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,notblank"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,account_role"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type UserDTO struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	FullName           string  `json:"full_name"`
	Role               string  `json:"role"`
	IsActive           bool    `json:"is_active"`
	MustChangePassword bool    `json:"must_change_password"`
	LastLogin          *string `json:"last_login"`
	PasswordChangedAt  *string `json:"password_changed_at"`
	CreatedAt          string  `json:"created_at"`
}
