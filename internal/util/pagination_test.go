package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	offset, limit := Calculate(1, 10)
	assert.Zero(t, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(3, 10)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Calculate(0, 0)
	assert.Zero(t, offset)
	assert.Equal(t, DefaultPageSize, limit)
}
