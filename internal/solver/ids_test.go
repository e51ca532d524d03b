package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternerAssignsDenseConsecutiveIDs(t *testing.T) {
	n := newInterner()

	assert.Equal(t, 0, n.id("a"), "first id")
	assert.Equal(t, 1, n.id("b"), "second id")
	assert.Equal(t, 0, n.id("a"), "repeated key should return the same id")
	assert.Equal(t, 2, n.len())
	assert.Equal(t, "b", n.key(1))
}
