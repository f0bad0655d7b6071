package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	a := RandString(64)
	b := RandString(64)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", a)
	assert.Empty(t, RandString(0))
}
