package utils

import (
	"errors" // Error classification
	"time"   // Time for token expiration

	"news_portal/internal/domain" // Identity and Role

	"github.com/golang-jwt/jwt/v5" // JWT library
)

var (
	ErrTokenInvalid = errors.New("token invalid") // Bad signature, algorithm or payload shape
	ErrTokenExpired = errors.New("token expired") // Past the exp claim
)

// Claims is the token payload
type Claims struct {
	ID                   string `json:"id"`   // Subject user ID
	Role                 string `json:"role"` // Subject role
	jwt.RegisteredClaims        // Standard JWT claims (iat, exp)
}

// TokenCodec issues and verifies HS256 identity tokens
type TokenCodec struct {
	secret []byte           // Process-wide signing key, read-only after construction
	ttl    time.Duration    // Token lifetime
	Now    func() time.Time // Clock, replaceable in tests
}

// NewTokenCodec creates a codec for the given secret and lifetime
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl, Now: time.Now}
}

// Issue signs a token for the identity
func (tc *TokenCodec) Issue(id domain.Identity) (string, error) {
	if id.ID == "" || !id.Role.Valid() {
		return "", ErrTokenInvalid
	}
	now := tc.Now()
	// exp has whole-second precision; round up so a token never expires before its ttl
	expiry := now.Add(tc.ttl)
	if whole := expiry.Truncate(time.Second); !whole.Equal(expiry) {
		expiry = whole.Add(time.Second)
	}
	claims := Claims{
		ID:   id.ID,
		Role: string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry), // Expiry
			IssuedAt:  jwt.NewNumericDate(now),    // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(tc.secret)                       // Sign the token with the secret
}

// Verify parses a token and returns the identity it carries
func (tc *TokenCodec) Verify(tokenStr string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return tc.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg switching
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tc.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrTokenExpired
		}
		return domain.Identity{}, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return domain.Identity{}, ErrTokenInvalid
	}
	// The payload must carry a subject and a known role; the role is parsed here once
	role, ok := domain.ParseRole(claims.Role)
	if claims.ID == "" || !ok {
		return domain.Identity{}, ErrTokenInvalid
	}
	return domain.Identity{ID: claims.ID, Role: role}, nil
}
