package authz

import (
	"fmt"

	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
)

// Caller - явная идентичность вызывающего, передаваемая в каждую операцию сервисов.
type Caller struct {
	UserID             string
	Username           string
	FullName           string
	Role               entities.Role
	MustChangePassword bool
}

func CallerFromUser(u *entities.User) Caller {
	return Caller{
		UserID:             u.ID,
		Username:           u.Username,
		FullName:           u.FullName,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword(),
	}
}

func (c Caller) IsAdmin() bool {
	return c.Role == entities.RoleAdmin
}

// Require превращает Denied в AuthError. Пустой Caller считается неаутентифицированным.
func Require(caller Caller, op Operation) error {
	if caller.UserID == "" {
		return apperrors.NewAuthError("требуется аутентификация")
	}
	if Authorize(caller.Role, op) == Denied {
		return apperrors.NewForbiddenError(fmt.Sprintf("недостаточно прав для операции '%s'", op))
	}
	return nil
}
