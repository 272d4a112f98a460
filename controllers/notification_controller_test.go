package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

func seedNotification(t *testing.T, db *gorm.DB, userID *uint, title string) models.Notification {
	t.Helper()

	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: "body",
		Type:    "info",
	}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}
	return notification
}

func TestListMyNotifications(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	seedNotification(t, db, &alice.ID, "For Alice")
	seedNotification(t, db, &bob.ID, "For Bob")
	seedNotification(t, db, nil, "Store-wide broadcast")

	router := setupTestRouter()
	router.GET("/notifications", mockAuthMiddleware(alice.ID, "customer"), ListMyNotifications)

	w := performJSON(t, router, http.MethodGet, "/notifications", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2, "Own notifications plus broadcasts, never other users'")

	titles := make([]string, 0, len(data))
	for _, raw := range data {
		titles = append(titles, raw.(map[string]interface{})["title"].(string))
	}
	assert.Contains(t, titles, "For Alice")
	assert.Contains(t, titles, "Store-wide broadcast")
	assert.NotContains(t, titles, "For Bob")
}

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	alice := seedUser(t, db, "Alice", "alice@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")

	own := seedNotification(t, db, &alice.ID, "For Alice")
	foreign := seedNotification(t, db, &bob.ID, "For Bob")
	broadcast := seedNotification(t, db, nil, "Broadcast")

	router := setupTestRouter()
	router.PATCH("/notifications/:id/read", mockAuthMiddleware(alice.ID, "customer"), MarkNotificationRead)

	t.Run("Owner can mark own notification read", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", own.ID), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var stored models.Notification
		assert.NoError(t, db.First(&stored, own.ID).Error)
		assert.True(t, stored.Read)
	})

	t.Run("Cannot mark another user's notification", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", foreign.ID), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", errorCode(decodeResponse(t, w)))
	})

	t.Run("Broadcasts are not markable", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", broadcast.ID), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown notification returns not found", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPatch, "/notifications/9999/read", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOTIFICATION_NOT_FOUND", errorCode(decodeResponse(t, w)))
	})
}

func TestCreateNotification(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	user := seedUser(t, db, "Target", "target@example.com")

	router := setupTestRouter()
	router.POST("/admin/notifications", mockAuthMiddleware(1, "admin"), CreateNotification)

	t.Run("Targeted notification", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/admin/notifications", map[string]interface{}{
			"user_id": user.ID,
			"title":   "Order update",
			"message": "Your order shipped",
			"type":    "order_status",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(user.ID), data["user_id"])
	})

	t.Run("Broadcast when user_id omitted", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/admin/notifications", map[string]interface{}{
			"title":   "Holiday hours",
			"message": "Closed on Monday",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := decodeResponse(t, w)["data"].(map[string]interface{})
		assert.Nil(t, data["user_id"])
		assert.Equal(t, "info", data["type"], "Type defaults to info")
	})

	t.Run("Unknown target user", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/admin/notifications", map[string]interface{}{
			"user_id": 4242,
			"title":   "Order update",
			"message": "Your order shipped",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(decodeResponse(t, w)))
	})
}
