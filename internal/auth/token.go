package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Token parse errors. The middleware treats all three identically (proceed
// unauthenticated); they are distinguished for logging and tests.
var (
	// ErrTokenMalformed indicates the token does not decode into the
	// expected three-part structure.
	ErrTokenMalformed = errors.New("auth: malformed token")
	// ErrTokenBadSignature indicates the signature does not verify under
	// the configured key.
	ErrTokenBadSignature = errors.New("auth: invalid token signature")
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenConfig configures token issuance and verification. The secret and TTL
// are process-wide and never rotated at runtime.
type TokenConfig struct {
	// Secret is the HMAC signing key (required).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TTL is the token lifetime (default: 1h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *TokenConfig) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
}

// Validate checks required fields.
func (c *TokenConfig) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if len(c.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 bytes (got: %d)", len(c.Secret))
	}
	return nil
}

// TokenService issues and verifies HS256-signed identity tokens. Verification
// is a pure function of (token, key, time); the service holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	cfg TokenConfig
}

// NewTokenService creates a token service from configuration.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return &TokenService{cfg: cfg}, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue creates a signed token for the identity, valid from now.
func (s *TokenService) Issue(identity Identity) (string, error) {
	return s.IssueAt(identity, time.Now())
}

// IssueAt creates a signed token for the identity with iat=now and
// exp=now+TTL.
func (s *TokenService) IssueAt(identity Identity, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Roles: identity.Roles,
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string against the current time and returns the
// Identity it carries.
func (s *TokenService) Parse(tokenString string) (Identity, error) {
	return s.ParseAt(tokenString, time.Now())
}

// ParseAt verifies a token string as of the given instant. Signature
// comparison inside jwt/v5 is constant-time (HMAC recompute-and-compare).
func (s *TokenService) ParseAt(tokenString string, now time.Time) (Identity, error) {
	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Identity{}, mapTokenError(err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, ErrTokenMalformed
	}
	return claims.Identity(), nil
}

// keyFunc rejects tokens whose header names a different signing method
// before handing back the verification key.
func (s *TokenService) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// mapTokenError normalizes jwt/v5 errors into the package's taxonomy.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	case errors.Is(err, gojwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return ErrTokenMalformed
	}
}
