package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Run("ReturnsValueWhenSet", func(t *testing.T) {
		t.Setenv("TEST_STRING_VAR", "custom")
		assert.Equal(t, "custom", GetEnvOrDefault("TEST_STRING_VAR", "fallback"))
	})

	t.Run("ReturnsDefaultWhenUnset", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvOrDefault("TEST_UNSET_VAR", "fallback"))
	})

	t.Run("EmptyValueTreatedAsUnset", func(t *testing.T) {
		t.Setenv("TEST_EMPTY_VAR", "")
		assert.Equal(t, "fallback", GetEnvOrDefault("TEST_EMPTY_VAR", "fallback"))
	})
}

func TestGetEnvIntOrDefault(t *testing.T) {
	t.Run("ParsesInteger", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "25")
		assert.Equal(t, 25, GetEnvIntOrDefault("TEST_INT_VAR", 5))
	})

	t.Run("NonNumericFallsBack", func(t *testing.T) {
		t.Setenv("TEST_INT_VAR", "many")
		assert.Equal(t, 5, GetEnvIntOrDefault("TEST_INT_VAR", 5))
	})

	t.Run("UnsetFallsBack", func(t *testing.T) {
		assert.Equal(t, 5, GetEnvIntOrDefault("TEST_UNSET_INT_VAR", 5))
	})
}
