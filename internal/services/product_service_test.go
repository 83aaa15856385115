// internal/services/product_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gadaelectronics/storefront/internal/models"
	"github.com/gadaelectronics/storefront/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *ProductService
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (s *ProductServiceTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.Product{}))
	s.db = db
	s.svc = NewProductService(db)

	catalog := []models.Product{
		{ID: "tv-55", Name: "Ultra HD Smart TV 55\"", Category: "tvs", Price: 699.99,
			Description: "Breathtaking 4K resolution television.", Stock: 15, Rating: 4.7, IsFeatured: true},
		{ID: "buds", Name: "Wireless Earbuds", Category: "audio", Price: 149.99,
			Description: "Noise cancelling earbuds for daily commuting.", Stock: 50, Rating: 4.5, IsNew: true},
		{ID: "cam", Name: "Mirrorless Camera", Category: "cameras", Price: 1499.99,
			Description: "Full-frame mirrorless camera for professionals.", Stock: 0, Rating: 4.9, IsFeatured: true},
		{ID: "watch", Name: "Smart Watch", Category: "wearables", Subcategory: "fitness", Price: 299.99,
			Description: "Fitness tracking smart watch with GPS.", Stock: 25, Rating: 4.2, IsNew: true},
	}
	for i := range catalog {
		s.Require().NoError(db.Create(&catalog[i]).Error)
	}
}

func defaultPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

func (s *ProductServiceTestSuite) TestSearchMatchesNameAndDescription() {
	// Case-insensitive name match.
	products, total, err := s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), Search: "earBUDS",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("buds", products[0].ID)

	// Description match.
	products, total, err = s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), Search: "mirrorless",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("cam", products[0].ID)

	// No hits.
	_, total, err = s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), Search: "refrigerator",
	})
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *ProductServiceTestSuite) TestFilters() {
	_, total, err := s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), Category: "audio",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	_, total, err = s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), Subcategory: "fitness",
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)

	min, max := 200.0, 800.0
	products, total, err := s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), PriceMin: &min, PriceMax: &max,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	for _, p := range products {
		s.GreaterOrEqual(p.Price, min)
		s.LessOrEqual(p.Price, max)
	}

	inStock := true
	_, total, err = s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), InStock: &inStock,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total) // the sold-out camera drops off

	featured := true
	_, total, err = s.svc.GetProducts(ProductSearchParams{
		PaginationParams: defaultPage(), IsFeatured: &featured,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
}

func (s *ProductServiceTestSuite) TestSortAndPagination() {
	params := ProductSearchParams{PaginationParams: utils.PaginationParams{
		Page: 1, Limit: 2, Sort: "price", Order: "asc",
	}}

	products, total, err := s.svc.GetProducts(params)
	s.Require().NoError(err)
	s.Equal(int64(4), total)
	s.Require().Len(products, 2)
	s.Equal("buds", products[0].ID)
	s.Equal("watch", products[1].ID)

	params.Page = 2
	products, _, err = s.svc.GetProducts(params)
	s.Require().NoError(err)
	s.Require().Len(products, 2)
	s.Equal("tv-55", products[0].ID)

	// An unlisted sort column falls back instead of reaching the database.
	params.Sort = "password_hash"
	_, _, err = s.svc.GetProducts(params)
	s.NoError(err)
}

func (s *ProductServiceTestSuite) TestFeaturedAndNewListings() {
	featured, err := s.svc.GetFeaturedProducts(8)
	s.Require().NoError(err)
	s.Len(featured, 2)
	s.Equal("cam", featured[0].ID) // highest rating first

	fresh, err := s.svc.GetNewProducts(8)
	s.Require().NoError(err)
	s.Len(fresh, 2)
}

func (s *ProductServiceTestSuite) TestCreateAndUpdateProduct() {
	created, err := s.svc.CreateProduct(&CreateProductRequest{
		ID:          "soundbar",
		Name:        "Dolby Atmos Soundbar",
		Category:    "audio",
		Price:       399.99,
		Description: "Room-filling sound from a single bar.",
		Stock:       10,
	})
	s.Require().NoError(err)
	s.Equal("soundbar", created.ID)

	_, err = s.svc.CreateProduct(&CreateProductRequest{
		ID:          "soundbar",
		Name:        "Duplicate Soundbar",
		Category:    "audio",
		Price:       399.99,
		Description: "Duplicate identifiers are refused.",
	})
	s.Error(err)
	s.Contains(err.Error(), "already exists")

	stock := 3
	updated, err := s.svc.UpdateProduct("soundbar", &UpdateProductRequest{
		Price: 349.99,
		Stock: &stock,
	})
	s.Require().NoError(err)
	s.InDelta(349.99, updated.Price, 0.001)
	s.Equal(3, updated.Stock)
	s.Equal("Dolby Atmos Soundbar", updated.Name) // untouched fields persist

	_, err = s.svc.UpdateProduct("missing", &UpdateProductRequest{Price: 1})
	s.Error(err)
}

func (s *ProductServiceTestSuite) TestAppendProductImage() {
	product, err := s.svc.AppendProductImage("tv-55", "https://cdn.example.com/tv-55/front.jpg")
	s.Require().NoError(err)
	s.Require().Len(product.Images, 1)
	s.Equal("https://cdn.example.com/tv-55/front.jpg", product.Images[0])
}
