package util

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	first := NewULID()
	second := NewULID()

	assert.Len(t, first, 26)
	assert.NotEqual(t, first, second)
	_, err := ulid.ParseStrict(first)
	assert.NoError(t, err)
}
