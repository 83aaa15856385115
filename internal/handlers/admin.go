// internal/handlers/admin.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gadaelectronics/storefront/internal/services"
	"github.com/gadaelectronics/storefront/internal/utils"
)

// AdminHandler is the catalog and order management surface; every route is
// behind AdminRequired.
type AdminHandler struct {
	productService *services.ProductService
	orderService   *services.OrderService
	storageService *services.StorageService
}

func NewAdminHandler(productService *services.ProductService, orderService *services.OrderService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		orderService:   orderService,
		storageService: storageService,
	}
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			validationFailed(c, err)
			return
		}
		if strings.Contains(err.Error(), "already exists") {
			utils.ConflictResponse(c, "PRODUCT_EXISTS", "A product with this id already exists")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create product")
		return
	}

	utils.CreatedResponse(c, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			validationFailed(c, err)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update product")
		return
	}

	utils.SuccessResponse(c, product)
}

// UploadProductImage stores an image and appends its URL to the product.
func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	productID := c.Param("id")

	if _, err := h.productService.GetProduct(productID); err != nil {
		utils.NotFoundResponse(c, "Product")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadProductImage(file, header, productID)
	if err != nil {
		utils.BadRequestResponse(c, "Upload rejected", err.Error())
		return
	}

	product, err := h.productService.AppendProductImage(productID, result.URL)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to record image")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"upload":  result,
		"product": product,
	})
}

func (h *AdminHandler) GetAllOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.GetAllOrders(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}
