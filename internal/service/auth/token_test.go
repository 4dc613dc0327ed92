package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService("top-secret", "ride-hail-insights")
	require.NoError(t, err)
	return s
}

func TestTokenService_IssueAndRoleCheck(t *testing.T) {
	s := newService(t)
	admin := models.User{ID: uuid.New(), Name: "ops", Role: types.AdminRole.String()}

	token, err := s.Issue(admin, time.Hour)
	require.NoError(t, err)

	user, err := s.RoleCheck(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, admin, *user)
}

func TestTokenService_Expired(t *testing.T) {
	s := newService(t)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Issue(models.User{ID: uuid.New(), Role: "ADMIN"}, time.Minute)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = s.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpToken)
}

func TestTokenService_Rejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	other, err := NewTokenService("another-secret", "ride-hail-insights")
	require.NoError(t, err)
	foreign, err := other.Issue(models.User{ID: uuid.New(), Role: "ADMIN"}, time.Hour)
	require.NoError(t, err)

	unknownRole, err := s.Issue(models.User{ID: uuid.New(), Role: "DRIVER"}, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": uuid.NewString(), "role": "ADMIN"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"wrong secret": foreign,
		"unknown role": unknownRole,
		"alg none":     unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.RoleCheck(ctx, token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
