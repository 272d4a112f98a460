package services

import (
	"fmt"
	"strconv"
	"time"

	jose "gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"

	"github.com/delgado-brothers/delgado-foods-api/config"
)

// TokenTTL is how long issued tokens stay valid
const TokenTTL = 24 * time.Hour

// TokenService issues HS256 JWTs for customer and admin sessions.
// The tokens are validated by the middleware's jwt validator using the
// same shared secret.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService creates a token service from the application configuration
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      TokenTTL,
	}
}

// IssueUserToken issues a token for a customer account
func (s *TokenService) IssueUserToken(userID uint) (string, error) {
	return s.issue(strconv.FormatUint(uint64(userID), 10), "customer")
}

// IssueAdminToken issues a token for a back-office admin account
func (s *TokenService) IssueAdminToken(adminID uint) (string, error) {
	return s.issue(strconv.FormatUint(uint64(adminID), 10), "admin")
}

func (s *TokenService) issue(subject, role string) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: s.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create token signer: %w", err)
	}

	now := time.Now()
	claims := jwt.Claims{
		Issuer:   s.issuer,
		Subject:  subject,
		Audience: jwt.Audience{s.audience},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.Signed(signer).
		Claims(claims).
		Claims(map[string]interface{}{"role": role}).
		CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}
