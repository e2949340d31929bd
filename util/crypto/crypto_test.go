package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("pw")
	require.NoError(t, err)

	assert.True(t, IsBcryptHash(hash))
	assert.True(t, CheckPasswordHash(hash, "pw"))
	assert.False(t, CheckPasswordHash(hash, "pw "))
	assert.False(t, CheckPasswordHash(hash, ""))
	assert.False(t, CheckPasswordHash("", "pw"))
}

func TestIsBcryptHashRejectsPlaintext(t *testing.T) {
	assert.False(t, IsBcryptHash("qwerty"))
	assert.False(t, IsBcryptHash("$2nonsense"))
}
