package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

func setTestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Port:        "8080",
		GoEnv:       "test",
		JWTSecret:   "test-secret-test-secret-test-secret!",
		JWTIssuer:   "https://api.delgadofoods.com/",
		JWTAudience: "delgado-foods-storefront",
	}
	config.SetConfig(cfg)
	return cfg
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		seedEmail      string
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully register customer",
			requestBody: map[string]interface{}{
				"name":     "Rosa Delgado",
				"email":    "Rosa@Example.com",
				"password": "long-enough-password",
				"phone":    "+1-555-0142",
				"address":  "3 Harbor Lane",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Reject duplicate email",
			requestBody: map[string]interface{}{
				"name":     "Rosa Delgado",
				"email":    "taken@example.com",
				"password": "long-enough-password",
			},
			seedEmail:      "taken@example.com",
			expectedStatus: http.StatusConflict,
			expectedError:  "EMAIL_EXISTS",
		},
		{
			name: "Reject short password",
			requestBody: map[string]interface{}{
				"name":     "Rosa Delgado",
				"email":    "rosa@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Reject malformed email",
			requestBody: map[string]interface{}{
				"name":     "Rosa Delgado",
				"email":    "not-an-email",
				"password": "long-enough-password",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			config.SetDB(db)
			setTestConfig(t)

			if tt.seedEmail != "" {
				seedUser(t, db, "Existing User", tt.seedEmail)
			}

			router := setupTestRouter()
			router.POST("/auth/register", Register)

			w := performJSON(t, router, http.MethodPost, "/auth/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
				return
			}

			data := response["data"].(map[string]interface{})
			assert.Equal(t, "rosa@example.com", data["email"], "Emails are stored lowercased")
			_, exposed := data["password_hash"]
			assert.False(t, exposed, "Password hash must never serialize")
		})
	}
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setTestConfig(t)

	seedUser(t, db, "Login User", "login@example.com")

	router := setupTestRouter()
	router.POST("/auth/login", Login)

	t.Run("Valid credentials return a token", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
			"email":    "login@example.com",
			"password": "sup3r-secret",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		data := response["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
		user := data["user"].(map[string]interface{})
		assert.Equal(t, "login@example.com", user["email"])
	})

	t.Run("Wrong password is rejected", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
			"email":    "login@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(decodeResponse(t, w)))
	})

	t.Run("Unknown email gets the same rejection", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
			"email":    "nobody@example.com",
			"password": "sup3r-secret",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(decodeResponse(t, w)))
	})
}

func TestAdminLogin(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setTestConfig(t)

	admin := models.AdminUser{Name: "Back Office", Email: "admin@delgadofoods.com"}
	assert.NoError(t, admin.SetPassword("admin-passw0rd"))
	assert.NoError(t, db.Create(&admin).Error)

	router := setupTestRouter()
	router.POST("/auth/admin/login", AdminLogin)

	t.Run("Admin credentials return a token", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/admin/login", map[string]interface{}{
			"email":    "admin@delgadofoods.com",
			"password": "admin-passw0rd",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"])
	})

	t.Run("Customer account cannot log in as admin", func(t *testing.T) {
		seedUser(t, db, "Plain Customer", "customer@example.com")

		w := performJSON(t, router, http.MethodPost, "/auth/admin/login", map[string]interface{}{
			"email":    "customer@example.com",
			"password": "sup3r-secret",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateMyProfile(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := seedUser(t, db, "Profile User", "profile@example.com")

	router := setupTestRouter()
	router.PUT("/users/me", mockAuthMiddleware(user.ID, "customer"), UpdateMyProfile)

	w := performJSON(t, router, http.MethodPut, "/users/me", map[string]interface{}{
		"phone":   "+1-555-0777",
		"address": "New Warehouse Road 9",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	assert.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "+1-555-0777", stored.Phone)
	assert.Equal(t, "New Warehouse Road 9", stored.Address)
	assert.Equal(t, "Profile User", stored.Name, "Omitted fields stay untouched")
}

func TestPasswordResetFlow(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	setTestConfig(t)

	user := seedUser(t, db, "Reset User", "reset@example.com")

	router := setupTestRouter()
	router.POST("/auth/forgot-password", ForgotPassword)
	router.POST("/auth/reset-password", ResetPassword)
	router.POST("/auth/login", Login)

	t.Run("Forgot password stores a token", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/forgot-password", map[string]interface{}{
			"email": "reset@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var stored models.User
		assert.NoError(t, db.First(&stored, user.ID).Error)
		assert.NotNil(t, stored.ResetToken)
		assert.NotNil(t, stored.ResetTokenExpiry)
	})

	t.Run("Unknown email gets the same generic response", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/forgot-password", map[string]interface{}{
			"email": "stranger@example.com",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Reset with stored token changes the password", func(t *testing.T) {
		var stored models.User
		assert.NoError(t, db.First(&stored, user.ID).Error)

		w := performJSON(t, router, http.MethodPost, "/auth/reset-password", map[string]interface{}{
			"token":    *stored.ResetToken,
			"password": "brand-new-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		// Token is single use
		assert.NoError(t, db.First(&stored, user.ID).Error)
		assert.Nil(t, stored.ResetToken)

		w = performJSON(t, router, http.MethodPost, "/auth/login", map[string]interface{}{
			"email":    "reset@example.com",
			"password": "brand-new-password",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := seedUser(t, db, "Expired User", "expired@example.com")
		token := "deadbeef-expired-token"
		past := time.Now().Add(-time.Minute)
		assert.NoError(t, db.Model(&expired).Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": past,
		}).Error)

		w := performJSON(t, router, http.MethodPost, "/auth/reset-password", map[string]interface{}{
			"token":    token,
			"password": "another-password",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(decodeResponse(t, w)))
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/auth/reset-password", map[string]interface{}{
			"token":    "no-such-token",
			"password": "another-password",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_TOKEN", errorCode(decodeResponse(t, w)))
	})
}
