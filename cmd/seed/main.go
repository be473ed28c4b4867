package main

import (
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to bootstrap default admin: %v", err)
	}

	categories := []models.Category{
		{Slug: "apparel", Name: "Apparel", SortOrder: 1},
		{Slug: "footwear", Name: "Footwear", SortOrder: 2},
		{Slug: "accessories", Name: "Accessories", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"apparel", "footwear", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	shirtsParent := categoryIDs["apparel"]
	var shirts models.Category
	if err := models.DB.Where("slug = ?", "shirts").First(&shirts).Error; err != nil && shirtsParent != 0 {
		shirts = models.Category{Slug: "shirts", Name: "Shirts", ParentID: &shirtsParent, SortOrder: 1}
		if err := models.DB.Create(&shirts).Error; err != nil {
			stdLog.Printf("Failed to create category shirts: %v", err)
		} else {
			stdLog.Printf("Created category: shirts")
		}
	}

	products := []models.Product{
		{
			CategoryID:      shirts.ID,
			Slug:            "oxford-shirt",
			Name:            "Classic Oxford Shirt",
			Description:     "Breathable cotton oxford shirt with a relaxed fit.",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(1999)),
			DiscountedPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(1499)),
			Stock:           40,
			Sizes:           models.StringArray{"S", "M", "L", "XL"},
			SpecsJSON: models.JSON(map[string]interface{}{
				"fabric": map[string]interface{}{"material": "100% cotton", "weave": "oxford"},
			}),
			Images:   models.StringArray{"https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=800"},
			IsActive: true,
		},
		{
			CategoryID:  categoryIDs["footwear"],
			Slug:        "canvas-sneakers",
			Name:        "Low-Top Canvas Sneakers",
			Description: "Everyday canvas sneakers with a vulcanized sole.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2499)),
			Stock:       25,
			Sizes:       models.StringArray{"7", "8", "9", "10", "11"},
			Images:      models.StringArray{"https://images.unsplash.com/photo-1525966222134-fcfa99b8ae77?w=800"},
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["accessories"],
			Slug:        "leather-belt",
			Name:        "Full-Grain Leather Belt",
			Description: "Hand-finished leather belt with a brushed buckle.",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(899)),
			Stock:       60,
			Sizes:       models.StringArray{"32", "34", "36"},
			Images:      models.StringArray{"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800"},
			IsActive:    true,
		},
	}

	for i := range products {
		product := &products[i]
		if product.CategoryID == 0 {
			stdLog.Printf("Skipping product %s: category missing", product.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Slug)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Slug)
	}

	var oxford models.Product
	if err := models.DB.Where("slug = ?", "oxford-shirt").First(&oxford).Error; err == nil {
		variants := []models.ProductVariant{
			{
				ProductID: oxford.ID,
				VariantID: "oxford-white",
				MainImage: "https://images.unsplash.com/photo-1598033129183-c4f50c736f10?w=800",
				SpecsJSON: models.JSON(map[string]interface{}{
					"colour": map[string]interface{}{"name": "White"},
				}),
			},
			{
				ProductID: oxford.ID,
				VariantID: "oxford-navy",
				MainImage: "https://images.unsplash.com/photo-1603252109303-2751441dd157?w=800",
				SpecsJSON: models.JSON(map[string]interface{}{
					"colour": map[string]interface{}{"name": "Navy"},
				}),
			},
		}
		for _, variant := range variants {
			var existing models.ProductVariant
			if err := models.DB.Where("product_id = ? AND variant_id = ?", variant.ProductID, variant.VariantID).First(&existing).Error; err == nil {
				stdLog.Printf("Variant already exists: %s", variant.VariantID)
				continue
			}
			if err := models.DB.Create(&variant).Error; err != nil {
				stdLog.Printf("Failed to create variant %s: %v", variant.VariantID, err)
				continue
			}
			stdLog.Printf("Created variant: %s", variant.VariantID)
		}
	}

	stdLog.Println("Seed finished")
}
