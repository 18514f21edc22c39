package crypto_test

import (
	"drawbattle/crypto"
	"drawbattle/domain"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	t.Parallel()
	hasher := crypto.NewArgon2idHasher(1, 15*1024, 32, 16, 1)

	hash, err := hasher.Hash("supersecretpassword")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id"), "hash should start with argon2id prefix")

	again, err := hasher.Hash("supersecretpassword")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "every hash gets its own salt")
}

func TestCompare(t *testing.T) {
	t.Parallel()
	hasher := crypto.NewArgon2idHasher(1, 15*1024, 32, 16, 1)
	password := "my_password_123"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	match, err := hasher.Compare(hash, password)
	assert.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Compare(hash, "wrong_password")
	assert.NoError(t, err)
	assert.False(t, match)

	match, err = hasher.Compare("invalid-hash-string", password)
	assert.ErrorIs(t, err, domain.UnexpectedPasswordHashComparisonError)
	assert.False(t, match)
}

func TestHasherParams(t *testing.T) {
	t.Parallel()
	iter, memory, parallelism := uint32(2), uint32(12*1024), uint8(2)
	keyLen, saltLen := uint32(32), uint32(16)
	hasher := crypto.NewArgon2idHasher(iter, memory, keyLen, saltLen, parallelism)

	hash, err := hasher.Hash("test_param_check")
	require.NoError(t, err)

	// $argon2id$v=19$m=12288,t=2,p=2$salt$key
	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, fmt.Sprintf("m=%d,t=%d,p=%d", memory, iter, parallelism), parts[3])

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	require.NoError(t, err)
	assert.Len(t, salt, int(saltLen))

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	require.NoError(t, err)
	assert.Len(t, key, int(keyLen))
}
