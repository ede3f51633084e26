package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	got, err := Generate(16)
	require.NoError(t, err)
	assert.Len(t, got, 16)
}

func TestGenerate_DefaultLength(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)
}

func TestNewRentalNumber(t *testing.T) {
	num, err := NewRentalNumber()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(num, "RNT-"))
	assert.NoError(t, ValidatePrefix(num, PrefixRental))
}

func TestNewRentalNumber_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		num, err := NewRentalNumber()
		require.NoError(t, err)
		assert.False(t, seen[num], "duplicate rental number %s", num)
		seen[num] = true
	}
}

func TestParsePrefixedID(t *testing.T) {
	prefix, short, err := ParsePrefixedID("RNT-abc123")
	require.NoError(t, err)
	assert.Equal(t, "RNT", prefix)
	assert.Equal(t, "abc123", short)

	_, _, err = ParsePrefixedID("noprefix")
	assert.Error(t, err)
}

func TestValidatePrefix_Mismatch(t *testing.T) {
	assert.Error(t, ValidatePrefix("TSH-abc", PrefixRental))
}
