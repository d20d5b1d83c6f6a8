package auth

import (
	"testing"

	"passport/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T, secret string) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{SecretKey: secret})
	require.NoError(t, err)

	concrete, ok := svc.(*jwtService)
	require.True(t, ok)

	return concrete
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService(t, "unit-test-secret")
	accountID := uuid.New()

	token, err := svc.Issue(accountID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedID, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, parsedID)
}

func TestJWTService_IssueOmitsExpiration(t *testing.T) {
	svc := newTestJWTService(t, "unit-test-secret")

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (any, error) {
		return []byte("unit-test-secret"), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Contains(t, claims, "sub")
	assert.Contains(t, claims, "iat")
	assert.NotContains(t, claims, "exp")
}

func TestJWTService_ValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestJWTService(t, "secret-a")
	verifier := newTestJWTService(t, "secret-b")

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t, "unit-test-secret")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)

	_, err = svc.Validate("")
	assert.Error(t, err)
}
