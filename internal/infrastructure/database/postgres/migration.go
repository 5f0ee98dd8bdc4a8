// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/franchise-backend/internal/domain/invoice"
	"github.com/your-org/franchise-backend/internal/domain/loyalty"
	"github.com/your-org/franchise-backend/internal/domain/order"
	"github.com/your-org/franchise-backend/internal/domain/product"
	"github.com/your-org/franchise-backend/internal/domain/user"
	"github.com/your-org/franchise-backend/internal/pkg/roles"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain - Base tables
		&user.User{},
		&user.Address{},

		// Catalog
		&product.Category{},
		&product.Product{},

		// Loyalty ledger
		&loyalty.Account{},
		&loyalty.Transaction{},

		// Order domain - Dependent tables
		&order.Order{},
		&order.OrderItem{},
		&order.PackingItem{},
		&order.StatusHistory{},

		// Invoices
		&invoice.Invoice{},
		&invoice.Line{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_categories_sort_order ON categories(sort_order)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// One live unpaid order per user; closes the race the service-level
		// guard cannot
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_pending_unpaid ON orders(user_id) WHERE payment_status = 'pending' AND status <> 'cancelled' AND deleted_at IS NULL",

		// Order item indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Packing checklist indexes
		"CREATE INDEX IF NOT EXISTS idx_order_packing_items_order_packed ON order_packing_items(order_id, packed)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_status ON order_status_history(status)",

		// Loyalty indexes
		"CREATE INDEX IF NOT EXISTS idx_loyalty_transactions_user_created ON loyalty_transactions(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_loyalty_transactions_order_type ON loyalty_transactions(order_id, type)",

		// Invoice indexes
		"CREATE INDEX IF NOT EXISTS idx_invoices_user_issued ON invoices(user_id, issued_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice ON invoice_lines(invoice_id)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_addresses_user_default ON addresses(user_id, is_default)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := m.seedOwnerUser(); err != nil {
		return fmt.Errorf("failed to seed owner user: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedCategories creates the default catalog categories
func (m *Migration) seedCategories() error {
	log.Println("🏷️ Seeding categories...")

	categories := []product.Category{
		{
			Name:        "Teas",
			Slug:        "teas",
			Description: "Loose-leaf and packaged teas",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Name:        "Blends & Masalas",
			Slug:        "blends-masalas",
			Description: "House masala mixes and instant premixes",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Name:        "Accessories",
			Slug:        "accessories",
			Description: "Cups, kettles and outlet supplies",
			SortOrder:   3,
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var existing product.Category
		if err := m.db.Where("slug = ?", category.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := m.db.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Name, err)
		}
	}
	return nil
}

// seedOwnerUser creates the initial owner account for development
func (m *Migration) seedOwnerUser() error {
	log.Println("👤 Seeding owner user...")

	var existing user.User
	if err := m.db.Where("email = ?", "owner@tvanamm.local").First(&existing).Error; err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Owner@2345"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	owner := user.User{
		Email:     "owner@tvanamm.local",
		Password:  string(hashed),
		FirstName: "Franchise",
		LastName:  "Owner",
		Role:      roles.RoleOwner,
		IsActive:  true,
	}
	if err := m.db.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to create owner user: %w", err)
	}
	return nil
}

// seedProducts creates a few catalog entries for development
func (m *Migration) seedProducts() error {
	log.Println("🫖 Seeding products...")

	var teaCategory product.Category
	if err := m.db.Where("slug = ?", "teas").First(&teaCategory).Error; err != nil {
		return fmt.Errorf("tea category missing: %w", err)
	}

	products := []product.Product{
		{
			SKU:         "masala-chai-250",
			Name:        "Masala Chai 250g",
			Description: "Signature masala chai blend",
			BasePrice:   10000,
			GSTRate:     18,
			CategoryID:  teaCategory.ID,
			WeightGrams: 250,
			IsActive:    true,
		},
		{
			SKU:         "green-tea-100",
			Name:        "Green Tea 100g",
			Description: "Whole-leaf green tea",
			BasePrice:   5000,
			GSTRate:     5,
			CategoryID:  teaCategory.ID,
			WeightGrams: 100,
			IsActive:    true,
		},
		{
			SKU:         "cardamom-chai-500",
			Name:        "Cardamom Chai 500g",
			Description: "Cardamom-forward franchise blend",
			BasePrice:   25000,
			GSTRate:     18,
			CategoryID:  teaCategory.ID,
			WeightGrams: 500,
			IsActive:    true,
		},
	}

	for _, p := range products {
		var existing product.Product
		if err := m.db.Where("sku = ?", p.SKU).First(&existing).Error; err == nil {
			continue
		}
		if err := m.db.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create product %s: %w", p.SKU, err)
		}
	}
	return nil
}

// GetTableInfo logs row counts for the main tables (development helper)
func (m *Migration) GetTableInfo() {
	tables := []string{
		"users", "addresses", "categories", "products",
		"loyalty_accounts", "loyalty_transactions",
		"orders", "order_items", "order_packing_items", "order_status_history",
		"invoices", "invoice_lines",
	}

	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("⚠️ Failed to count %s: %v", table, err)
			continue
		}
		log.Printf("📊 %s: %d rows", table, count)
	}
}
