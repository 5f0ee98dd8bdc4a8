// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/cart"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only,default=true"`
}

// ProductResponse represents paginated product list
type ProductResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   int64   `json:"base_price" binding:"required,gt=0"`
	GSTRate     float64 `json:"gst_rate"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	WeightGrams int     `json:"weight_grams"`
	IsActive    bool    `json:"is_active"`
}

// Lookup implements the cart's catalog boundary. The cart reads the
// GST-exclusive base price and rate once, at add time.
func (s *Service) Lookup(ctx context.Context, productID string) (*cart.Product, error) {
	var p Product
	err := s.db.WithContext(ctx).Where("sku = ?", productID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	return &cart.Product{
		ID:        p.SKU,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		GSTRate:   p.GSTRate,
		Active:    p.IsActive,
	}, nil
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	query := s.db.Model(&Product{}).Preload("Category")

	if req.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var products []Product
	err := query.
		Order("name ASC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return &ProductResponse{Products: products, Total: total, Page: req.Page, Limit: req.Limit}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var p Product
	err := s.db.Preload("Category").Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// GetProductBySKU retrieves a single product by SKU
func (s *Service) GetProductBySKU(sku string) (*Product, error) {
	var p Product
	err := s.db.Preload("Category").Where("sku = ?", sku).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &p, nil
}

// CreateProduct creates a new catalog entry
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	if req.GSTRate < 0 || req.GSTRate > 100 {
		return nil, apperrors.NewValidation("gst_rate", "GST rate must be between 0 and 100")
	}

	var existing Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, apperrors.NewValidation("sku", "SKU already exists")
	}

	p := Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		GSTRate:     req.GSTRate,
		CategoryID:  req.CategoryID,
		WeightGrams: req.WeightGrams,
		IsActive:    req.IsActive,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// UpdateProduct updates a catalog entry. Price changes here never touch
// carts that already hold the item or settled orders.
func (s *Service) UpdateProduct(id uint, updates map[string]interface{}) (*Product, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "id")
	delete(updates, "sku")

	if err := s.db.Model(p).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct soft-deletes a catalog entry
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetCategories lists active categories in sort order
func (s *Service) GetCategories() ([]Category, error) {
	var categories []Category
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category, deriving the slug from the name
func (s *Service) CreateCategory(name, description string, sortOrder int) (*Category, error) {
	c := Category{
		Name:        name,
		Slug:        generateSlug(name),
		Description: description,
		SortOrder:   sortOrder,
		IsActive:    true,
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
