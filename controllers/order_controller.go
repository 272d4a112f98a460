package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/delgado-brothers/delgado-foods-api/config"
	"github.com/delgado-brothers/delgado-foods-api/middleware"
	"github.com/delgado-brothers/delgado-foods-api/models"
)

// OrderItemInput is one (product, quantity) pair in a checkout request
type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for creating an order.
// Customer contact fields are optional for authenticated users (backfilled
// from the profile) and required for guest checkout.
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone   string           `json:"customer_phone"`
	ShippingAddress string           `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	Notes           string           `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders - places an order as a logged-in
// customer or as a guest. The order row and its items are written in a
// single transaction; if any product id fails to resolve nothing is persisted.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	// Resolve the authenticated user, if any. The route accepts anonymous
	// requests, so a missing token just means guest checkout.
	var user *models.User
	if userID, err := middleware.CurrentUserID(c); err == nil {
		var u models.User
		if err := db.First(&u, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User account not found",
				},
			})
			return
		}
		user = &u
	}

	// Backfill contact fields from the profile for logged-in customers
	if user != nil {
		if req.CustomerName == "" {
			req.CustomerName = user.Name
		}
		if req.CustomerEmail == "" {
			req.CustomerEmail = user.Email
		}
		if req.CustomerPhone == "" {
			req.CustomerPhone = user.Phone
		}
		if req.ShippingAddress == "" {
			req.ShippingAddress = user.Address
		}
	}

	// Guest checkout must supply contact fields explicitly
	var missing []string
	if req.CustomerName == "" {
		missing = append(missing, "customer_name")
	}
	if req.CustomerEmail == "" {
		missing = append(missing, "customer_email")
	}
	if req.CustomerPhone == "" {
		missing = append(missing, "customer_phone")
	}
	if req.ShippingAddress == "" {
		missing = append(missing, "shipping_address")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_CUSTOMER_INFO",
				"message": fmt.Sprintf("Missing required customer fields: %s", strings.Join(missing, ", ")),
			},
		})
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash_on_delivery"
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "pending",
		Notes:           req.Notes,
	}
	if user != nil {
		order.UserID = &user.ID
	}

	// Resolve products, freeze prices and write order + items atomically
	var unknownProduct uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					unknownProduct = item.ProductID
				}
				return err
			}

			subtotal := product.Price * float64(item.Quantity)
			total += subtotal
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    item.Quantity,
				Subtotal:    subtotal,
			})
		}

		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		if unknownProduct != 0 {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": fmt.Sprintf("Product %d not found", unknownProduct),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Load the items to return complete data
	if err := db.Preload("Items").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders/mine - lists the caller's orders
func ListMyOrders(c *gin.Context) {
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
	var orders []models.Order
	if err := db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListOrders handles GET /api/v1/admin/orders - lists all orders, optionally
// filtered by status
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS",
					"message": fmt.Sprintf("Invalid status %q: must be one of pending, processing, completed, cancelled", status),
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/admin/orders/:id - fetches one order with items
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.Preload("Items").Preload("User").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status - applies a
// status transition. Any member of the status set may move to any other; the
// notification written afterwards is best-effort and never fails the update.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
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

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": fmt.Sprintf("Invalid status %q: must be one of pending, processing, completed, cancelled", req.Status),
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	// Notify the owning user about the change. Guest orders have no owner,
	// and a notification failure must not roll back the status update.
	if order.UserID != nil {
		notification := models.Notification{
			UserID:  order.UserID,
			Title:   "Order update",
			Message: fmt.Sprintf("Your order #%d is now %s", order.ID, status),
			Type:    "order_status",
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("Failed to create status notification for order %d: %v", order.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id - removes an order and
// all of its items. Items go first to avoid foreign-key violations.
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %d deleted", order.ID),
	})
}
