package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type periodQuery struct {
	Period string `form:"period" validate:"omitempty,oneof=day week month"`
}

func TestValidateDTO(t *testing.T) {
	assert.NoError(t, ValidateDTO(&periodQuery{}))
	assert.NoError(t, ValidateDTO(&periodQuery{Period: "week"}))

	err := ValidateDTO(&periodQuery{Period: "year"})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "[period]")
		assert.Contains(t, err.Error(), "[oneof]")
	}
}
