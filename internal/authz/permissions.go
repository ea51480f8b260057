// internal/authz/permissions.go
package authz

import "maintenance-system/internal/entities"

// Operation - имя действия, которое проверяет шлюз ролей.
type Operation string

// --- СПИСОК ВСЕХ ОПЕРАЦИЙ В СИСТЕМЕ ---

const (
	// Оборудование
	EquipmentCreate Operation = "equipment:create"
	EquipmentList   Operation = "equipment:list"
	EquipmentUpdate Operation = "equipment:update"
	EquipmentDelete Operation = "equipment:delete"
	EquipmentExport Operation = "equipment:export"
	DashboardView   Operation = "dashboard:view"

	// Собственный профиль
	ProfileView       Operation = "profile:view"
	PasswordChangeOwn Operation = "password:change_own"

	// Пользователи
	UsersList          Operation = "users:list"
	UsersCreate        Operation = "users:create"
	UsersUpdate        Operation = "users:update"
	UsersDelete        Operation = "users:delete"
	UsersResetPassword Operation = "users:reset_password"
)

var userOperations = []Operation{
	EquipmentCreate,
	EquipmentList,
	EquipmentExport,
	DashboardView,
	ProfileView,
	PasswordChangeOwn,
}

var adminOnlyOperations = []Operation{
	EquipmentUpdate,
	EquipmentDelete,
	UsersList,
	UsersCreate,
	UsersUpdate,
	UsersDelete,
	UsersResetPassword,
}

// rolePermissions строится один раз; admin получает всё, что есть у user.
var rolePermissions = buildRolePermissions()

func buildRolePermissions() map[entities.Role]map[Operation]bool {
	user := make(map[Operation]bool, len(userOperations))
	for _, op := range userOperations {
		user[op] = true
	}

	admin := make(map[Operation]bool, len(userOperations)+len(adminOnlyOperations))
	for op := range user {
		admin[op] = true
	}
	for _, op := range adminOnlyOperations {
		admin[op] = true
	}

	return map[entities.Role]map[Operation]bool{
		entities.RoleUser:  user,
		entities.RoleAdmin: admin,
	}
}
