package batchid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New()
		assert.Len(t, id, 7)
		assert.True(t, Valid(id), "generated id %q should be valid", id)
	}
}

func TestNewPracticallyUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := New()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %q after %d draws", id, i)
		seen[id] = struct{}{}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("B7K2Q9X"))
	assert.True(t, Valid("B000000"))
	assert.False(t, Valid("b7k2q9x"))
	assert.False(t, Valid("X7K2Q9X"))
	assert.False(t, Valid("B7K2Q9"))
	assert.False(t, Valid("B7K2Q9XX"))
	assert.False(t, Valid(""))
}
