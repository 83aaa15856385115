// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Product is catalog reference data. Rows are seeded at startup and are
// read-only through the public API; only order completion touches Stock.
type Product struct {
	ID            string         `json:"id" gorm:"primary_key;size:64"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	Category      string         `json:"category" gorm:"size:100;index"`
	Subcategory   string         `json:"subcategory,omitempty" gorm:"size:100"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64        `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	Description   string         `json:"description" gorm:"type:text"`
	Features      pq.StringArray `json:"features,omitempty" gorm:"type:text[]"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Specifications JSONB         `json:"specifications,omitempty" gorm:"type:jsonb"`
	Rating        float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount   int64          `json:"review_count" gorm:"default:0"`
	Stock         int            `json:"stock" gorm:"default:0"`
	IsFeatured    bool           `json:"is_featured" gorm:"default:false"`
	IsNew         bool           `json:"is_new" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}
