// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gadaelectronics/storefront/internal/cart"
	"github.com/gadaelectronics/storefront/internal/checkout"
	"github.com/gadaelectronics/storefront/internal/services"
	"github.com/gadaelectronics/storefront/internal/utils"
)

// CartHandler exposes the per-user in-memory cart. Quantities clamp to
// current stock on every mutation, so the view the user checks out with is
// already stock-aware.
type CartHandler struct {
	store          *cart.Store
	productService *services.ProductService
	policy         checkout.Policy
}

type cartView struct {
	Items   []cart.Line      `json:"items"`
	Summary checkout.Summary `json:"summary"`
}

func NewCartHandler(store *cart.Store, productService *services.ProductService, policy checkout.Policy) *CartHandler {
	return &CartHandler{
		store:          store,
		productService: productService,
		policy:         policy,
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, h.view(h.store.Get(userID)))
}

// AddItem merges a product into the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.productService.GetProduct(req.ProductID)
	if err != nil {
		utils.NotFoundResponse(c, "Product")
		return
	}
	if product.Stock < 1 {
		utils.ConflictResponse(c, "OUT_OF_STOCK", "Product is out of stock")
		return
	}

	userCart := h.store.Get(userID)
	userCart.AddLine(*product, req.Quantity)

	utils.SuccessResponse(c, h.view(userCart))
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	userCart := h.store.Get(userID)
	userCart.SetQuantity(c.Param("productId"), req.Quantity)

	utils.SuccessResponse(c, h.view(userCart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userCart := h.store.Get(userID)
	userCart.RemoveLine(c.Param("productId"))

	utils.SuccessResponse(c, h.view(userCart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.store.Clear(userID)
	utils.SuccessResponse(c, h.view(h.store.Get(userID)))
}

func (h *CartHandler) view(userCart *cart.Cart) cartView {
	return cartView{
		Items:   userCart.Lines(),
		Summary: h.policy.Summarize(userCart.Subtotal()),
	}
}
