package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordState_Transitions(t *testing.T) {
	initial := InitialPasswordState()
	assert.Equal(t, PasswordStateMustChange, initial)
	assert.True(t, initial.RequiresChange())

	t.Run("self change", func(t *testing.T) {
		assert.Equal(t, PasswordStateNormal, PasswordStateMustChange.AfterSelfChange())
		assert.Equal(t, PasswordStateNormal, PasswordStateNormal.AfterSelfChange())
	})

	t.Run("admin reset", func(t *testing.T) {
		assert.Equal(t, PasswordStateMustChange, PasswordStateNormal.AfterAdminReset())
		assert.Equal(t, PasswordStateMustChange, PasswordStateMustChange.AfterAdminReset())
	})
}

func TestPasswordStateFromFlag(t *testing.T) {
	assert.Equal(t, PasswordStateMustChange, PasswordStateFromFlag(true))
	assert.Equal(t, PasswordStateNormal, PasswordStateFromFlag(false))

	u := User{PasswordState: PasswordStateFromFlag(false)}
	assert.False(t, u.MustChangePassword())
}

func TestEquipmentFilter_IsEmpty(t *testing.T) {
	assert.True(t, EquipmentFilter{}.IsEmpty())
	assert.False(t, EquipmentFilter{Area: "Sistemas"}.IsEmpty())
	assert.False(t, EquipmentFilter{Search: "hp"}.IsEmpty())
}
