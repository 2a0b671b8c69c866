package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", h)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("rahasia123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("salah")))
}
