package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorKeepsFirstError(t *testing.T) {
	v := New()
	v.Check(false, "page", "must be greater than zero")
	v.Check(false, "page", "must be a maximum of 10 million")
	v.Check(true, "sort", "invalid sort value")

	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"page": "must be greater than zero"}, v.Errors)
}

func TestHelpers(t *testing.T) {
	assert.True(t, PermittedValue("driver", "driver", "rider"))
	assert.False(t, PermittedValue(3, 1, 2))
	assert.True(t, Unique([]string{"a", "b"}))
	assert.False(t, Unique([]string{"a", "a"}))
}
