package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/models"
	"github.com/delgado-brothers/delgado-foods-api/services"
)

// CreateNewsFlashRequest represents the request body for creating a news-flash entry
type CreateNewsFlashRequest struct {
	Title        string  `json:"title" binding:"required"`
	Body         string  `json:"body"`
	ImageKey     *string `json:"image_key"`
	DisplayOrder int     `json:"display_order"`
}

// UpdateNewsFlashRequest represents the request body for updating a news-flash entry
type UpdateNewsFlashRequest struct {
	Title        *string `json:"title"`
	Body         *string `json:"body"`
	ImageKey     *string `json:"image_key"`
	Active       *bool   `json:"active"`
	DisplayOrder *int    `json:"display_order"`
}

// ListNewsFlashes handles GET /api/v1/newsflashes - lists active feed entries
func ListNewsFlashes(c *gin.Context) {
	db := config.GetDB()

	var flashes []models.NewsFlash
	if err := db.Where("active = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&flashes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch news flashes",
			},
		})
		return
	}

	svc := services.GetImageService()
	for i := range flashes {
		if flashes[i].ImageKey == nil || svc == nil {
			continue
		}
		url, err := svc.GetImageURL(*flashes[i].ImageKey)
		if err != nil {
			log.Printf("Failed to resolve image URL for news flash %d: %v", flashes[i].ID, err)
			continue
		}
		flashes[i].ImageURL = &url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flashes,
	})
}

// CreateNewsFlash handles POST /api/v1/admin/newsflashes
func CreateNewsFlash(c *gin.Context) {
	var req CreateNewsFlashRequest
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

	flash := models.NewsFlash{
		Title:        req.Title,
		Body:         req.Body,
		ImageKey:     req.ImageKey,
		Active:       true,
		DisplayOrder: req.DisplayOrder,
	}

	db := config.GetDB()
	if err := db.Create(&flash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create news flash",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    flash,
	})
}

// UpdateNewsFlash handles PUT /api/v1/admin/newsflashes/:id
func UpdateNewsFlash(c *gin.Context) {
	var req UpdateNewsFlashRequest
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
	var flash models.NewsFlash
	if err := db.First(&flash, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NEWSFLASH_NOT_FOUND",
				"message": "News flash not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.ImageKey != nil {
		updates["image_key"] = *req.ImageKey
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    flash,
		})
		return
	}

	if err := db.Model(&flash).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update news flash",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    flash,
	})
}

// DeleteNewsFlash handles DELETE /api/v1/admin/newsflashes/:id. The stored
// image is removed best-effort after the row goes.
func DeleteNewsFlash(c *gin.Context) {
	db := config.GetDB()

	var flash models.NewsFlash
	if err := db.First(&flash, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NEWSFLASH_NOT_FOUND",
				"message": "News flash not found",
			},
		})
		return
	}

	if err := db.Delete(&flash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete news flash",
			},
		})
		return
	}

	if flash.ImageKey != nil {
		if svc := services.GetImageService(); svc != nil {
			if err := svc.DeleteImage(*flash.ImageKey); err != nil {
				log.Printf("Failed to delete image for news flash %d: %v", flash.ID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("News flash %d deleted", flash.ID),
	})
}
