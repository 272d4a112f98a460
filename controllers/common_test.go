package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/delgado-brothers/delgado-foods-api/middleware"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.ContactMessage{},
		&models.NewsFlash{},
		&models.WeeklyDeal{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupTestRouter creates a Gin engine in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware injects authenticated claims the way the JWT
// middleware would after validating a real token
func mockAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	subject := strconv.FormatUint(uint64(userID), 10)
	return func(c *gin.Context) {
		c.Set("user_id", subject)
		c.Set("validated_claims", &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: subject,
			},
			CustomClaims: &middleware.CustomClaims{Role: role},
		})
		c.Next()
	}
}

// performJSON issues a JSON request against the router and returns the recorder
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeResponse parses a JSON response body into a generic map
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response should be valid JSON: %v", err)
	}
	return response
}

// errorCode extracts error.code from a decoded response
func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}

// seedProduct inserts a product with the given name and price
func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:    name,
		Price:   price,
		Unit:    "case",
		Stock:   100,
		InStock: true,
		Active:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return product
}

// seedUser inserts a customer account
func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:    name,
		Email:   email,
		Phone:   "+1-555-0100",
		Address: "12 Market Street",
	}
	if err := user.SetPassword("sup3r-secret"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// seedOrder inserts an order with a single line item for the given product
func seedOrder(t *testing.T, db *gorm.DB, userID *uint, product models.Product, quantity int, status models.OrderStatus) models.Order {
	t.Helper()

	order := models.Order{
		UserID:          userID,
		CustomerName:    "Walk-in Customer",
		CustomerEmail:   "walkin@example.com",
		CustomerPhone:   "+1-555-0199",
		ShippingAddress: "7 Dock Road",
		TotalAmount:     product.Price * float64(quantity),
		Status:          status,
		PaymentMethod:   "cash_on_delivery",
		PaymentStatus:   "pending",
		Items: []models.OrderItem{
			{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    quantity,
				Subtotal:    product.Price * float64(quantity),
			},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}
