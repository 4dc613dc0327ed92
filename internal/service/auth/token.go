package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/types"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService validates HS256 bearer tokens issued by the operator tooling.
// The dashboard has no user store, so the claims are the whole identity.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue signs a token for user that expires after ttl.
func (s *TokenService) Issue(user models.User, ttl time.Duration) (string, error) {
	issuedAt := s.now().UTC()
	claims := models.CustomClaims{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns its claims.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.CustomClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &models.CustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, ErrExpToken)
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err))
	}
	if !parsed.Valid || claims.ID == uuid.Nil {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	return claims, nil
}

// RoleCheck validates the token and returns the caller.
func (s *TokenService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	switch types.UserRole(claims.Role) {
	case types.AdminRole, types.ViewerRole:
	default:
		return nil, wrap.Error(ctx, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role))
	}

	return &models.User{ID: claims.ID, Name: claims.Name, Role: claims.Role}, nil
}
