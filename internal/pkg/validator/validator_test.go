package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "Loa", Quantity: 2}))

	errs := Validate(sample{})
	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "gt", errs["Quantity"])
}
