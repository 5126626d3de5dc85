package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword_NonDeterministic(t *testing.T) {
	first, err := HashPassword("hunter2hunter2")
	assert.NoError(t, err)

	second, err := HashPassword("hunter2hunter2")
	assert.NoError(t, err)

	// bcrypt embeds a random salt, so the same plaintext must hash differently
	assert.NotEqual(t, first, second)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)

	assert.NoError(t, CheckPassword("correct horse battery staple", hash))
	assert.Error(t, CheckPassword("wrong password", hash))
}
