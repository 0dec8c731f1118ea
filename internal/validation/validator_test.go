package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" validate:"required,notblank,max=5"`
	Items []string `json:"items" validate:"required,min=1,dive,notblank"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "ok", Items: []string{"a"}}))
	assert.Error(t, Struct(sample{Name: "   ", Items: []string{"a"}}))
	assert.Error(t, Struct(sample{Name: "ok", Items: []string{" "}}))
	assert.Error(t, Struct(sample{Name: "ok", Items: []string{}}))
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	err := Struct(sample{Name: "toolong", Items: nil})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "name must be at most 5 characters", fields[0].Message)
	assert.Equal(t, "items", fields[1].Field)
	assert.Equal(t, "items is required", fields[1].Message)

	assert.Equal(t, "name must be at most 5 characters; items is required", Message(err))
}

func TestMessageWithoutValidationErrors(t *testing.T) {
	assert.Equal(t, "Invalid request", Message(nil))
}
