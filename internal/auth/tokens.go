// Package auth issues and resolves the stateless signed tokens that gate
// mutation. Tokens are HS256 JWTs; no server-side session table exists.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminators carried in the token_type claim so a refresh
// token can never be replayed as an access token (or vice versa).
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	issuerName   = "quill-api"
	audienceName = "quill-client"
)

// ErrInvalidToken is returned for malformed, expired, mistyped, or
// wrongly-signed tokens. Callers map it to a 401.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload shared by access and refresh tokens.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Issuer mints and validates token pairs. Signing material is init-time
// configuration and is never mutated at runtime.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer creates an Issuer with the given secret and lifetimes.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair mints an access/refresh token pair for the given user.
func (i *Issuer) IssuePair(userID uint) (accessToken, refreshToken string, err error) {
	accessToken, err = i.sign(userID, TokenTypeAccess, i.accessTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = i.sign(userID, TokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Refresh validates a refresh token and mints a fresh access token without
// requiring the password again.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	userID, err := subjectUserID(claims)
	if err != nil {
		return "", err
	}
	return i.sign(userID, TokenTypeAccess, i.accessTTL)
}

// Resolve validates an access token and returns the actor's user ID.
// Callers treat a missing token as anonymous before ever calling this; a
// present-but-invalid token is always an error.
func (i *Issuer) Resolve(accessToken string) (uint, error) {
	claims, err := i.parse(accessToken, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return subjectUserID(claims)
}

func (i *Issuer) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    issuerName,
			Audience:  jwt.ClaimStrings{audienceName},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        newJTI(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	},
		jwt.WithIssuer(issuerName),
		jwt.WithAudience(audienceName),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func subjectUserID(claims *Claims) (uint, error) {
	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

// newJTI creates a unique JWT ID to prevent replay attacks.
func newJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
