package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	// Arrange
	password := "mysecretpassword123"

	// Act
	hash, err := HashPassword(password)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	// bcrypt использует random salt, поэтому хэши разные
	hash1, err1 := HashPassword("mysecretpassword123")
	hash2, err2 := HashPassword("mysecretpassword123")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword_Success(t *testing.T) {
	hash, err := HashPassword("mysecretpassword123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("mysecretpassword123", hash))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("mysecretpassword123")
	require.NoError(t, err)

	assert.False(t, CheckPassword("wrong-password", hash))
}
