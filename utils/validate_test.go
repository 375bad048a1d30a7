package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsesJSONFieldNames(t *testing.T) {
	var form struct {
		FirstName string `json:"first_name" validate:"notblank"`
	}
	form.FirstName = " \t"

	err := Validate.Struct(form)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "first_name", verrs[0].Field())
	assert.Equal(t, "notblank", verrs[0].Tag())
}

func TestValidateMinCountsCharacters(t *testing.T) {
	assert.Error(t, Validate.Var("ééé", "min=6"))
	assert.NoError(t, Validate.Var("éééééé", "min=6"))
}
