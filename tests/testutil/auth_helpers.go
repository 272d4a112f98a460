package testutil

import (
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/middleware"
	"github.com/delgado-brothers/delgado-foods-api/services"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer, role string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Role: role,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, userID, issuer, role string) {
	claims := MockValidatedClaims(userID, issuer, role)
	c.Set("user_id", userID)
	c.Set("validated_claims", claims)
}

// IssueCustomerToken signs a real customer token the middleware will accept
func IssueCustomerToken(t *testing.T, cfg *config.Config, userID uint) string {
	t.Helper()

	token, err := services.NewTokenService(cfg).IssueUserToken(userID)
	if err != nil {
		t.Fatalf("Failed to issue customer token: %v", err)
	}
	return token
}

// IssueAdminToken signs a real admin token the middleware will accept
func IssueAdminToken(t *testing.T, cfg *config.Config, adminID uint) string {
	t.Helper()

	token, err := services.NewTokenService(cfg).IssueAdminToken(adminID)
	if err != nil {
		t.Fatalf("Failed to issue admin token: %v", err)
	}
	return token
}
