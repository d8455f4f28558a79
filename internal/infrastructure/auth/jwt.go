package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/organizer/backend/internal/domain/identity"
	"github.com/organizer/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrWrongExchange    = errors.New("exchange secret mismatch")
)

// userNamespace seeds the deterministic subject-to-UUID mapping so the same
// principal always resolves to the same user id
var userNamespace = uuid.MustParse("8f3c6f6e-25a1-4b89-9d3e-4b1a7c2d9f00")

// Claims represents the JWT claims issed by this service
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService issues and validates tokens for the single allowed principal.
// It implements identity.Resolver.
type JWTService struct {
	secret         []byte
	expiration     time.Duration
	issuer         string
	allowedSubject string
	exchangeSecret string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.AuthConfig) *JWTService {
	return &JWTService{
		secret:         []byte(cfg.JWTSecret),
		expiration:     cfg.TokenExpiration,
		issuer:         cfg.Issuer,
		allowedSubject: cfg.AllowedSubject,
		exchangeSecret: cfg.ExchangeSecret,
	}
}

// IssuedToken is a signed token with its expiry
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // Bearer
}

// Exchange issues a token for the allowed principal when the presented
// shared secret matches. The subject must equal the configured allow-listed
// principal.
func (s *JWTService) Exchange(subject, secret string) (*IssuedToken, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.exchangeSecret)) != 1 {
		return nil, ErrWrongExchange
	}
	if subject != s.allowedSubject {
		return nil, identity.ErrNotAllowed
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     signed,
		ExpiresAt: now.Add(s.expiration),
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates a token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// Resolve implements identity.Resolver. A valid token whose subject is not
// on the allow list is rejected even if it was once issuable.
func (s *JWTService) Resolve(ctx context.Context, tokenString string) (*identity.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, identity.ErrUnauthenticated
	}
	if claims.Subject != s.allowedSubject {
		return nil, identity.ErrNotAllowed
	}
	return &identity.User{
		ID:      UserIDForSubject(claims.Subject),
		Subject: claims.Subject,
	}, nil
}

// UserIDForSubject maps an external principal to its stable internal user id
func UserIDForSubject(subject string) uuid.UUID {
	return uuid.NewSHA1(userNamespace, []byte(subject))
}
