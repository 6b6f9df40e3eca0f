package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required,notblank"`
	Quantity int    `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(sample{Name: "Mouse", Quantity: 1}))

	errs := ValidateStruct(sample{Name: "   ", Quantity: 0})
	if assert.Len(t, errs, 2) {
		assert.Equal(t, "sample.Name", errs[0].FailedField)
		assert.Equal(t, "notblank", errs[0].Tag)
		assert.Equal(t, "sample.Quantity", errs[1].FailedField)
		assert.Equal(t, "gt", errs[1].Tag)
		assert.Equal(t, "0", errs[1].Value)
	}
}

func TestCheck_WrapsBaseError(t *testing.T) {
	base := errors.New("invalid input")

	assert.NoError(t, Check(sample{Name: "Mouse", Quantity: 2}, base))

	err := Check(sample{Name: "Mouse"}, base)
	assert.ErrorIs(t, err, base)
	assert.ErrorContains(t, err, "sample.Quantity")
}
