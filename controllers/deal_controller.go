package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

// CreateDealRequest represents the request body for creating a weekly deal
type CreateDealRequest struct {
	ProductID uint      `json:"product_id" binding:"required"`
	DealPrice float64   `json:"deal_price" binding:"required,gt=0"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required"`
}

// UpdateDealRequest represents the request body for updating a weekly deal
type UpdateDealRequest struct {
	DealPrice *float64   `json:"deal_price" binding:"omitempty,gt=0"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	Active    *bool      `json:"active"`
}

// ListActiveDeals handles GET /api/v1/deals - lists deals live right now
func ListActiveDeals(c *gin.Context) {
	db := config.GetDB()
	now := time.Now()

	var deals []models.WeeklyDeal
	if err := db.Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Preload("Product").
		Order("ends_at ASC").
		Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch deals",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deals,
	})
}

// ListDeals handles GET /api/v1/admin/deals - lists all deals for the back office
func ListDeals(c *gin.Context) {
	db := config.GetDB()

	var deals []models.WeeklyDeal
	if err := db.Preload("Product").Order("starts_at DESC").Find(&deals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch deals",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deals,
	})
}

// CreateDeal handles POST /api/v1/admin/deals
func CreateDeal(c *gin.Context) {
	var req CreateDealRequest
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

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DEAL_WINDOW",
				"message": "ends_at must be after starts_at",
			},
		})
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	deal := models.WeeklyDeal{
		ProductID: product.ID,
		DealPrice: req.DealPrice,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Active:    true,
	}

	if err := db.Create(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create deal",
			},
		})
		return
	}

	// Load the product relationship to return complete data
	if err := db.Preload("Product").First(&deal, deal.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load deal details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    deal,
	})
}

// UpdateDeal handles PUT /api/v1/admin/deals/:id
func UpdateDeal(c *gin.Context) {
	var req UpdateDealRequest
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
	var deal models.WeeklyDeal
	if err := db.First(&deal, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DEAL_NOT_FOUND",
				"message": "Deal not found",
			},
		})
		return
	}

	startsAt := deal.StartsAt
	endsAt := deal.EndsAt
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		endsAt = *req.EndsAt
	}
	if !endsAt.After(startsAt) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_DEAL_WINDOW",
				"message": "ends_at must be after starts_at",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.DealPrice != nil {
		updates["deal_price"] = *req.DealPrice
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    deal,
		})
		return
	}

	if err := db.Model(&deal).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update deal",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    deal,
	})
}

// DeleteDeal handles DELETE /api/v1/admin/deals/:id
func DeleteDeal(c *gin.Context) {
	db := config.GetDB()

	var deal models.WeeklyDeal
	if err := db.First(&deal, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DEAL_NOT_FOUND",
				"message": "Deal not found",
			},
		})
		return
	}

	if err := db.Delete(&deal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete deal",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Deal %d deleted", deal.ID),
	})
}
