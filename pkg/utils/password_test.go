package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.Error(t, err)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("maya_lee"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_maya"))
	assert.Error(t, ValidateUsername("maya lee"))
	assert.Equal(t, "maya", NormalizeUsername("  Maya "))
}
