package entities

// PasswordState - состояние учётной записи относительно обязательной смены пароля.
// Переходы возможны только через AfterSelfChange и AfterAdminReset.
type PasswordState string

const (
	PasswordStateMustChange PasswordState = "must_change"
	PasswordStateNormal     PasswordState = "normal"
)

// InitialPasswordState - состояние новой учётной записи.
func InitialPasswordState() PasswordState {
	return PasswordStateMustChange
}

// PasswordStateFromFlag восстанавливает состояние из колонки must_change_password.
func PasswordStateFromFlag(mustChange bool) PasswordState {
	if mustChange {
		return PasswordStateMustChange
	}
	return PasswordStateNormal
}

// AfterSelfChange: MUST_CHANGE -> NORMAL, NORMAL -> NORMAL.
func (s PasswordState) AfterSelfChange() PasswordState {
	return PasswordStateNormal
}

// AfterAdminReset: любое состояние -> MUST_CHANGE.
func (s PasswordState) AfterAdminReset() PasswordState {
	return PasswordStateMustChange
}

func (s PasswordState) RequiresChange() bool {
	return s != PasswordStateNormal
}
