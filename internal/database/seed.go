// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gadaelectronics/storefront/internal/models"
)

// Categories is the fixed set of storefront categories. Served directly by
// the catalog endpoint; products reference the slug.
var Categories = []models.Category{
	{ID: "1", Name: "Smartphones", Slug: "phones", Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02ff9?q=80&w=2080&auto=format&fit=crop"},
	{ID: "2", Name: "Laptops", Slug: "computers", Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?q=80&w=2071&auto=format&fit=crop"},
	{ID: "3", Name: "Audio", Slug: "audio", Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=2070&auto=format&fit=crop"},
	{ID: "4", Name: "TVs", Slug: "tvs", Image: "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?q=80&w=2070&auto=format&fit=crop"},
	{ID: "5", Name: "Wearables", Slug: "wearables", Image: "https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?q=80&w=2027&auto=format&fit=crop"},
	{ID: "6", Name: "Cameras", Slug: "cameras", Image: "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?q=80&w=1964&auto=format&fit=crop"},
}

// CatalogProducts is the storefront's reference catalog. Seeded at startup;
// SeedCatalog upserts descriptive fields but never touches stock on existing
// rows, since completed orders decrement it.
var CatalogProducts = []models.Product{
	{
		ID:            "1",
		Name:          "Ultra HD Smart TV 55\"",
		Category:      "tvs",
		Price:         699.99,
		OriginalPrice: 899.99,
		Description:   "Experience breathtaking 4K resolution and vibrant colors with this smart TV. Features advanced voice control and a sleek, borderless design.",
		Features: pq.StringArray{
			"4K Ultra HD Resolution",
			"Smart TV with Voice Control",
			"120Hz Refresh Rate",
			"HDR10+ Support",
			"3 HDMI Ports",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?q=80&w=2070&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1567690187548-f07b1d7bf5a9?q=80&w=1776&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Display":        "55-inch 4K UHD",
			"Resolution":     "3840 x 2160",
			"HDR":            "HDR10+",
			"Refresh Rate":   "120Hz",
			"Smart Features": "Voice Assistant, App Store",
			"Connectivity":   "Wi-Fi, Bluetooth 5.0, 3x HDMI, 2x USB",
		},
		Rating:      4.7,
		ReviewCount: 125,
		Stock:       15,
		IsFeatured:  true,
	},
	{
		ID:            "2",
		Name:          "Pro Wireless Earbuds",
		Category:      "audio",
		Subcategory:   "earbuds",
		Price:         149.99,
		OriginalPrice: 199.99,
		Description:   "Premium true wireless earbuds with active noise cancellation, crystal-clear sound, and 24-hour battery life.",
		Features: pq.StringArray{
			"Active Noise Cancellation",
			"24-hour Battery Life",
			"Wireless Charging Case",
			"Water and Sweat Resistant",
			"Touch Controls",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?q=80&w=1932&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1606220945770-b5b6c2c55bf1?q=80&w=1770&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Driver Size":      "11mm",
			"Connectivity":     "Bluetooth 5.2",
			"Battery Life":     "8 hours (24 with case)",
			"Charging":         "USB-C and Wireless",
			"Water Resistance": "IPX4",
		},
		Rating:      4.8,
		ReviewCount: 342,
		Stock:       50,
		IsFeatured:  true,
		IsNew:       true,
	},
	{
		ID:            "3",
		Name:          "Ultra Slim Laptop Pro",
		Category:      "computers",
		Subcategory:   "laptops",
		Price:         1299.99,
		OriginalPrice: 1499.99,
		Description:   "Powerful yet lightweight laptop with a stunning display, all-day battery life, and the latest processor.",
		Features: pq.StringArray{
			"Latest Gen Processor",
			"16GB RAM, 512GB SSD",
			"14-inch 4K Display",
			"Backlit Keyboard",
			"Fingerprint Reader",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1531297484001-80022131f5a1?q=80&w=2070&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?q=80&w=2071&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Processor": "Intel Core i7, 12th Gen",
			"Memory":    "16GB DDR5",
			"Storage":   "512GB NVMe SSD",
			"Display":   "14-inch 4K IPS",
			"Graphics":  "Intel Iris Xe",
			"Battery":   "Up to 12 hours",
		},
		Rating:      4.9,
		ReviewCount: 201,
		Stock:       10,
		IsFeatured:  true,
	},
	{
		ID:          "4",
		Name:        "Smart Watch Series 5",
		Category:    "wearables",
		Price:       299.99,
		Description: "Advanced smartwatch with health monitoring, GPS, and a beautiful always-on display.",
		Features: pq.StringArray{
			"Heart Rate and ECG Monitoring",
			"GPS and Altimeter",
			"Always-On Retina Display",
			"Water Resistant to 50m",
			"18-hour Battery Life",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1508685096489-7aacd43bd3b1?q=80&w=2027&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?q=80&w=1772&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Display":          "1.78\" OLED Retina",
			"Sensors":          "Heart Rate, ECG, Accelerometer, Gyroscope",
			"Connectivity":     "Bluetooth 5.0, Wi-Fi, GPS",
			"Battery":          "Up to 18 hours",
			"Water Resistance": "50 meters",
		},
		Rating:      4.6,
		ReviewCount: 178,
		Stock:       25,
		IsNew:       true,
	},
	{
		ID:          "5",
		Name:        "Professional Camera Kit",
		Category:    "cameras",
		Price:       1499.99,
		Description: "Professional-grade digital camera with 4K video capability, advanced autofocus, and a versatile lens kit.",
		Features: pq.StringArray{
			"24.2MP Full-Frame Sensor",
			"4K 60fps Video Recording",
			"5-Axis Image Stabilization",
			"Dual Card Slots",
			"Weather-Sealed Body",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1516035069371-29a1b244cc32?q=80&w=1964&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1502920917128-1aa500764cbd?q=80&w=1770&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Sensor":    "24.2MP Full-Frame CMOS",
			"Processor": "DIGIC X",
			"ISO Range": "100-51,200 (expandable)",
			"Autofocus": "Dual Pixel CMOS AF II",
			"Video":     "4K 60p, Full HD 120p",
			"Storage":   "Dual SD UHS-II Card Slots",
		},
		Rating:      4.9,
		ReviewCount: 87,
		Stock:       5,
	},
	{
		ID:          "6",
		Name:        "Premium Smartphone Pro",
		Category:    "phones",
		Price:       999.99,
		Description: "Flagship smartphone with an edge-to-edge display, pro-grade camera system, and all-day battery life.",
		Features: pq.StringArray{
			"6.7-inch Super Retina XDR Display",
			"Triple-Camera System with Night Mode",
			"A16 Bionic Chip",
			"Face ID",
			"5G Capable",
		},
		Images: pq.StringArray{
			"https://images.unsplash.com/photo-1510557880182-3d4d3cba35a5?q=80&w=2070&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1598327105666-5b89351aff97?q=80&w=2070&auto=format&fit=crop",
		},
		Specifications: models.JSONB{
			"Display":   "6.7\" Super Retina XDR",
			"Processor": "A16 Bionic",
			"Storage":   "128GB / 256GB / 512GB",
			"Camera":    "Triple 12MP (Wide, Ultra Wide, Telephoto)",
			"Battery":   "Up to 29 hours talk time",
			"OS":        "Latest Version",
		},
		Rating:      4.8,
		ReviewCount: 456,
		Stock:       20,
		IsFeatured:  true,
	},
}

// SeedCatalog loads the reference catalog. Existing rows keep their stock.
func SeedCatalog(db *gorm.DB) error {
	logrus.Info("Seeding product catalog...")

	for _, product := range CatalogProducts {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "subcategory", "price", "original_price",
				"description", "features", "images", "specifications",
				"rating", "review_count", "is_featured", "is_new", "updated_at",
			}),
		}).Create(&product).Error
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.ID, err)
		}
	}

	logrus.Infof("Catalog seeded with %d products", len(CatalogProducts))
	return nil
}
