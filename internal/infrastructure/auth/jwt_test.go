package auth

import (
	"context"
	"testing"
	"time"

	"github.com/organizer/backend/internal/domain/identity"
	"github.com/organizer/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *JWTService {
	return NewJWTService(config.AuthConfig{
		JWTSecret:       "test-secret-key-that-is-long-enough",
		TokenExpiration: time.Hour,
		Issuer:          "organizer-test",
		AllowedSubject:  "principal-1",
		ExchangeSecret:  "shared-secret",
	})
}

func TestExchangeAndResolve(t *testing.T) {
	svc := testService()

	issued, err := svc.Exchange("principal-1", "shared-secret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)

	user, err := svc.Resolve(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", user.Subject)
	assert.Equal(t, UserIDForSubject("principal-1"), user.ID)
}

func TestExchangeRejectsWrongSecret(t *testing.T) {
	svc := testService()

	_, err := svc.Exchange("principal-1", "wrong")
	assert.ErrorIs(t, err, ErrWrongExchange)
}

func TestExchangeRejectsUnlistedSubject(t *testing.T) {
	svc := testService()

	_, err := svc.Exchange("someone-else", "shared-secret")
	assert.ErrorIs(t, err, identity.ErrNotAllowed)
}

func TestResolveRejectsGarbageToken(t *testing.T) {
	svc := testService()

	_, err := svc.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	other := NewJWTService(config.AuthConfig{
		JWTSecret:       "another-secret-key-that-is-long-enough",
		TokenExpiration: time.Hour,
		Issuer:          "organizer-test",
		AllowedSubject:  "principal-1",
		ExchangeSecret:  "shared-secret",
	})
	issued, err := other.Exchange("principal-1", "shared-secret")
	require.NoError(t, err)

	svc := testService()
	_, err = svc.Resolve(context.Background(), issued.Token)
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
}

func TestUserIDForSubjectIsStable(t *testing.T) {
	assert.Equal(t, UserIDForSubject("abc"), UserIDForSubject("abc"))
	assert.NotEqual(t, UserIDForSubject("abc"), UserIDForSubject("abd"))
}
