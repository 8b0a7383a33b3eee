package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestIssueNewTokens_RoundTrip(t *testing.T) {
	key := testKey(t)

	access, refresh, jti, err := IssueNewTokens("user-1", "alice", key)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEmpty(t, jti)

	claims, err := ParseAndVerifySign(access, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "alice", claims.Username)

	refreshClaims, err := ParseAndVerifySign(refresh, &key.PublicKey)
	require.NoError(t, err)
	require.NotNil(t, refreshClaims.Jti, "Refresh token carries a jti for revocation")
	assert.Equal(t, jti, *refreshClaims.Jti)
}

func TestParseAndVerifySign_WrongKey(t *testing.T) {
	key := testKey(t)
	otherKey := testKey(t)

	access, _, _, err := IssueNewTokens("user-1", "alice", key)
	require.NoError(t, err)

	_, err = ParseAndVerifySign(access, &otherKey.PublicKey)
	assert.Error(t, err, "Token signed with a different key must be rejected")
}

func TestParseAndVerifySign_Expired(t *testing.T) {
	key := testKey(t)

	issueAt := time.Now().Add(-2 * time.Hour).Unix()
	expired, err := GenerateSign(&Claims{
		Sub:      "user-1",
		Username: "alice",
		Iat:      issueAt,
		Exp:      issueAt + 3600,
	}, key)
	require.NoError(t, err)

	_, err = ParseAndVerifySign(expired, &key.PublicKey)
	assert.Error(t, err, "Expired token must be rejected")
}

func TestParseAndVerifySign_Garbage(t *testing.T) {
	key := testKey(t)

	_, err := ParseAndVerifySign("not.a.token", &key.PublicKey)
	assert.Error(t, err)
}
