package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "ticketapp"

// ErrInvalidClientToken is returned for tokens that parse but carry no scope.
var ErrInvalidClientToken = errors.New("client token carries no scope")

// TokenManager signs and validates the cookie that binds a browser to its
// storage scope. The token authenticates nothing else.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims is the client token payload.
type Claims struct {
	ScopeID string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for scopeID and reports when it expires.
func (tm *TokenManager) GenerateToken(scopeID string) (string, time.Time, error) {
	if scopeID == "" {
		return "", time.Time{}, ErrInvalidClientToken
	}
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		ScopeID: scopeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates signature, issuer and expiry.
func (tm *TokenManager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.ScopeID == "" {
		return nil, ErrInvalidClientToken
	}
	return claims, nil
}
