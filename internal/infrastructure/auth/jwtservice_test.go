package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentra/internal/shared/config"
)

func newTestService(secret string, expMinutes int) *JWTService {
	return NewJWTService(&config.AuthConfig{
		JWTSecret:        secret,
		AccessExpMinutes: expMinutes,
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService("test-secret", 60)

	orgID := uint(7)
	token, err := svc.Issue(42, &orgID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	require.NotNil(t, claims.OrganizationID)
	assert.Equal(t, uint(7), *claims.OrganizationID)
}

func TestVerify_NoOrganizationScope(t *testing.T) {
	svc := newTestService("test-secret", 60)

	token, err := svc.Issue(42, nil)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, claims.OrganizationID)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := newTestService("secret-a", 60).Issue(42, nil)
	require.NoError(t, err)

	_, err = newTestService("secret-b", 60).Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc := newTestService("test-secret", -1)

	token, err := svc.Issue(42, nil)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService("test-secret", 60)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, hasher.Verify("s3cret", hash))
	assert.Error(t, hasher.Verify("wrong", hash))
}
