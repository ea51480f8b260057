package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Area   string  `validate:"notblank"`
	Type   string  `validate:"equipment_type"`
	Status *string `validate:"omitempty,equipment_status"`
	Role   string  `validate:"account_role"`
}

func TestRegisterCustomValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))

	status := "under_repair"
	assert.NoError(t, v.Struct(sample{Area: "Sistemas", Type: "cpu", Status: &status, Role: "user"}))
	assert.NoError(t, v.Struct(sample{Area: "Contabilidad", Type: "printer", Role: "admin"}))

	bad := "broken"
	err := v.Struct(sample{Area: "   ", Type: "laptop", Status: &bad, Role: "root"})
	require.Error(t, err)

	var fields []string
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"Area", "Type", "Status", "Role"}, fields)
}
