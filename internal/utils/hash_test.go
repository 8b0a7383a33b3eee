package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHash_And_Verify(t *testing.T) {
	hashed, err := GenerateHash("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"), "Hash should be in PHC format")

	ok, err := VerifyHash(hashed, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok, "Correct password should verify")

	ok, err = VerifyHash(hashed, "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok, "Wrong password must not verify")
}

func TestGenerateHash_SaltsDiffer(t *testing.T) {
	h1, err := GenerateHash("same-password")
	require.NoError(t, err)
	h2, err := GenerateHash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "Each hash should use a fresh salt")
}

func TestVerifyHash_MalformedInput(t *testing.T) {
	_, err := VerifyHash("not-a-hash", "password")
	assert.Error(t, err)
}
