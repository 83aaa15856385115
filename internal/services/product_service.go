// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gadaelectronics/storefront/internal/models"
	"github.com/gadaelectronics/storefront/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type ProductSearchParams struct {
	utils.PaginationParams
	Search      string
	Category    string
	Subcategory string
	PriceMin    *float64
	PriceMax    *float64
	InStock     *bool
	IsFeatured  *bool
	IsNew       *bool
}

type CreateProductRequest struct {
	ID             string                 `json:"id" validate:"required,min=1,max=64"`
	Name           string                 `json:"name" validate:"required,min=3,max=255"`
	Category       string                 `json:"category" validate:"required"`
	Subcategory    string                 `json:"subcategory,omitempty"`
	Price          float64                `json:"price" validate:"required,min=0.01"`
	OriginalPrice  float64                `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	Description    string                 `json:"description" validate:"required,min=10"`
	Features       []string               `json:"features,omitempty"`
	Images         []string               `json:"images,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Stock          int                    `json:"stock" validate:"min=0"`
	IsFeatured     bool                   `json:"is_featured,omitempty"`
	IsNew          bool                   `json:"is_new,omitempty"`
}

type UpdateProductRequest struct {
	Name           string                 `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Category       string                 `json:"category,omitempty"`
	Subcategory    string                 `json:"subcategory,omitempty"`
	Price          float64                `json:"price,omitempty" validate:"omitempty,min=0.01"`
	OriginalPrice  float64                `json:"original_price,omitempty" validate:"omitempty,min=0.01"`
	Description    string                 `json:"description,omitempty" validate:"omitempty,min=10"`
	Features       []string               `json:"features,omitempty"`
	Images         []string               `json:"images,omitempty"`
	Specifications map[string]interface{} `json:"specifications,omitempty"`
	Stock          *int                   `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsFeatured     *bool                  `json:"is_featured,omitempty"`
	IsNew          *bool                  `json:"is_new,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) GetProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Subcategory != "" {
		query = query.Where("subcategory = ?", params.Subcategory)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}
	if params.IsFeatured != nil {
		query = query.Where("is_featured = ?", *params.IsFeatured)
	}
	if params.IsNew != nil {
		query = query.Where("is_new = ?", *params.IsNew)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	query = utils.ApplySort(query, params.PaginationParams, "created_at", "price", "rating", "name", "review_count")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetFeaturedProducts(limit int) ([]models.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	var products []models.Product
	err := s.db.Where("is_featured = ?", true).
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetNewProducts(limit int) ([]models.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	var products []models.Product
	err := s.db.Where("is_new = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch new products: %w", err)
	}

	return products, nil
}

// CreateProduct adds a catalog entry. Admin surface only; the public API
// never mutates the catalog.
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Product
	if err := s.db.First(&existing, "id = ?", req.ID).Error; err == nil {
		return nil, errors.New("product with this id already exists")
	}

	product := &models.Product{
		ID:             req.ID,
		Name:           req.Name,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Description:    req.Description,
		Features:       req.Features,
		Images:         req.Images,
		Specifications: models.JSONB(req.Specifications),
		Stock:          req.Stock,
		IsFeatured:     req.IsFeatured,
		IsNew:          req.IsNew,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Subcategory != "" {
		updates["subcategory"] = req.Subcategory
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.OriginalPrice > 0 {
		updates["original_price"] = req.OriginalPrice
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Features != nil {
		updates["features"] = pq.StringArray(req.Features)
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Specifications != nil {
		updates["specifications"] = models.JSONB(req.Specifications)
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsNew != nil {
		updates["is_new"] = *req.IsNew
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

// AppendProductImage records an uploaded image URL on the product.
func (s *ProductService) AppendProductImage(id, url string) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	product.Images = append(product.Images, url)
	if err := s.db.Model(product).Update("images", product.Images).Error; err != nil {
		return nil, fmt.Errorf("failed to update product images: %w", err)
	}

	return product, nil
}
