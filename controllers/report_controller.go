package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

// ReportSummary is the admin dashboard summary. TotalSales sums every order
// regardless of status (pipeline value); CompletedSales is the authoritative
// revenue figure, summing completed orders only.
type ReportSummary struct {
	TotalSales     float64          `json:"total_sales"`
	CompletedSales float64          `json:"completed_sales"`
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	TotalProducts  int64            `json:"total_products"`
	TotalUsers     int64            `json:"total_users"`
	RecentOrders   []models.Order   `json:"recent_orders"`
}

// GetReports handles GET /api/v1/admin/reports - computes the dashboard
// summary with aggregate queries only, never loading full tables.
func GetReports(c *gin.Context) {
	db := config.GetDB()
	summary := ReportSummary{
		OrdersByStatus: make(map[string]int64),
	}

	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TotalSales).Error; err != nil {
		reportError(c)
		return
	}

	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.CompletedSales).Error; err != nil {
		reportError(c)
		return
	}

	if err := db.Model(&models.Order{}).Count(&summary.TotalOrders).Error; err != nil {
		reportError(c)
		return
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		reportError(c)
		return
	}
	for _, sc := range statusCounts {
		summary.OrdersByStatus[sc.Status] = sc.Count
	}

	if err := db.Model(&models.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		reportError(c)
		return
	}

	if err := db.Model(&models.User{}).Count(&summary.TotalUsers).Error; err != nil {
		reportError(c)
		return
	}

	if err := db.Preload("Items").
		Order("created_at DESC").
		Limit(5).
		Find(&summary.RecentOrders).Error; err != nil {
		reportError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func reportError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to compute report summary",
		},
	})
}
