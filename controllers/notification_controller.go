package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/middleware"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

// CreateNotificationRequest represents the request body for an admin-created
// notification. A nil user_id makes it a broadcast.
type CreateNotificationRequest struct {
	UserID  *uint  `json:"user_id"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
}

// ListMyNotifications handles GET /api/v1/notifications - lists the caller's
// notifications plus admin broadcasts, newest first
func ListMyNotifications(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var notifications []models.Notification
	if err := db.Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch notifications",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// MarkNotificationRead handles PATCH /api/v1/notifications/:id/read.
// Only the addressed user may mark a notification read; broadcasts keep a
// single shared read flag and are not markable by customers.
func MarkNotificationRead(c *gin.Context) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var notification models.Notification
	if err := db.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTIFICATION_NOT_FOUND",
				"message": "Notification not found",
			},
		})
		return
	}

	if notification.UserID == nil || *notification.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to update this notification",
			},
		})
		return
	}

	if err := db.Model(&notification).Update("read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update notification",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notification,
	})
}

// CreateNotification handles POST /api/v1/admin/notifications - sends a
// notification to one user or broadcasts to all
func CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	if req.UserID != nil {
		var user models.User
		if err := db.First(&user, *req.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "Target user not found",
				},
			})
			return
		}
	}

	notificationType := req.Type
	if notificationType == "" {
		notificationType = "info"
	}

	notification := models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    notificationType,
	}

	if err := db.Create(&notification).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create notification",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    notification,
	})
}
