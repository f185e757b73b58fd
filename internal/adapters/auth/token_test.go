package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("usr-1", "admin@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", userID)
}

func TestJWT_VerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Issue("usr-1", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	require.Error(t, err)
}

func TestJWT_VerifyRejectsExpired(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("usr-1", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = j.Verify(token)
	require.Error(t, err)
}

func TestJWT_VerifyRejectsGarbage(t *testing.T) {
	_, err := NewJWT("test-secret").Verify("not-a-token")
	require.Error(t, err)
}
