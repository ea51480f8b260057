package authz

import "maintenance-system/internal/entities"

// Decision - результат проверки шлюза.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// Authorize - чистая проверка: разрешена ли операция для роли.
// Неизвестная роль или операция всегда Denied.
func Authorize(role entities.Role, op Operation) Decision {
	if rolePermissions[role][op] {
		return Allowed
	}
	return Denied
}
