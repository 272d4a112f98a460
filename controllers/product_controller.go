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

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	WholesalePrice *float64 `json:"wholesale_price" binding:"omitempty,gt=0"`
	Unit           string   `json:"unit"`
	CategoryID     *uint    `json:"category_id"`
	ImageKey       *string  `json:"image_key"`
	Stock          int      `json:"stock" binding:"omitempty,gte=0"`
	Featured       bool     `json:"featured"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price" binding:"omitempty,gt=0"`
	WholesalePrice *float64 `json:"wholesale_price" binding:"omitempty,gt=0"`
	Unit           *string  `json:"unit"`
	CategoryID     *uint    `json:"category_id"`
	ImageKey       *string  `json:"image_key"`
	Stock          *int     `json:"stock" binding:"omitempty,gte=0"`
	InStock        *bool    `json:"in_stock"`
	Featured       *bool    `json:"featured"`
	Active         *bool    `json:"active"`
}

// attachImageURL resolves the product's storage key into a serving URL
func attachImageURL(product *models.Product) {
	if product.ImageKey == nil || *product.ImageKey == "" {
		return
	}
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	url, err := svc.GetImageURL(*product.ImageKey)
	if err != nil {
		log.Printf("Failed to resolve image URL for product %d: %v", product.ID, err)
		return
	}
	product.ImageURL = &url
}

// ListProducts handles GET /api/v1/products - lists active catalog products
// with optional category/featured filters
func ListProducts(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Product{}).Where("active = ?", true)

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if c.Query("in_stock") == "true" {
		query = query.Where("in_stock = ?", true)
	}

	var products []models.Product
	if err := query.Preload("Category").Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	for i := range products {
		attachImageURL(&products[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.Preload("Category").First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	attachImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// CreateProduct handles POST /api/v1/admin/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
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

	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Category not found",
				},
			})
			return
		}
	}

	unit := req.Unit
	if unit == "" {
		unit = "unit"
	}

	product := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		WholesalePrice: req.WholesalePrice,
		Unit:           unit,
		CategoryID:     req.CategoryID,
		ImageKey:       req.ImageKey,
		Stock:          req.Stock,
		InStock:        req.Stock > 0,
		Featured:       req.Featured,
		Active:         true,
	}

	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id. Price changes never
// touch historical order items; those carry their own frozen copies.
func UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
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
	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Category not found",
				},
			})
			return
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.WholesalePrice != nil {
		updates["wholesale_price"] = *req.WholesalePrice
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageKey != nil {
		updates["image_key"] = *req.ImageKey
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    product,
		})
		return
	}

	if err := db.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id. A product
// referenced by any order item cannot be physically deleted; historical
// orders must keep resolving their line items. The check-then-delete pair
// is not raced against concurrent checkouts: this is an admin-only path.
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	var references int64
	if err := db.Model(&models.OrderItem{}).Where("product_id = ?", product.ID).Count(&references).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check order references",
			},
		})
		return
	}

	if references > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_IN_USE",
				"message": fmt.Sprintf("Cannot delete product: it appears in %d order(s). Mark it inactive instead.", references),
			},
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Product %d deleted", product.ID),
	})
}
