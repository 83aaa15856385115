// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gadaelectronics/storefront/internal/database"
	"github.com/gadaelectronics/storefront/internal/services"
	"github.com/gadaelectronics/storefront/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts lists the catalog with filtering, sorting and pagination.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := services.ProductSearchParams{
		PaginationParams: utils.GetPaginationParams(c),
		Search:           c.Query("search"),
		Category:         c.Query("category"),
		Subcategory:      c.Query("subcategory"),
	}

	if v := c.Query("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.PriceMin = &f
		}
	}
	if v := c.Query("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.PriceMax = &f
		}
	}
	if v := c.Query("in_stock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			params.InStock = &b
		}
	}
	if v := c.Query("is_featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			params.IsFeatured = &b
		}
	}
	if v := c.Query("is_new"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			params.IsNew = &b
		}
	}

	products, total, err := h.productService.GetProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, product)
}

func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	products, err := h.productService.GetFeaturedProducts(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch featured products")
		return
	}

	utils.SuccessResponse(c, products)
}

func (h *ProductHandler) GetNewProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	products, err := h.productService.GetNewProducts(limit)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch new products")
		return
	}

	utils.SuccessResponse(c, products)
}

// GetCategories serves the fixed category set the storefront navigates by.
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, database.Categories)
}
