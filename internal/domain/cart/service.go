// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/domain/pricing"
	"github.com/your-org/franchise-backend/internal/pkg/apperrors"
)

// ProductCatalog is the external catalog boundary. The cart only reads the
// GST-exclusive base price and GST rate from it, and only at add time.
type ProductCatalog interface {
	Lookup(ctx context.Context, productID string) (*Product, error)
}

// Service handles working-cart business logic. It is passed explicitly to
// call sites rather than held as a shared singleton.
type Service struct {
	store   Store
	catalog ProductCatalog
	config  *config.Config
}

// NewService creates a new cart service
func NewService(store Store, catalog ProductCatalog, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		config:  cfg,
	}
}

// Response represents a cart with computed totals
type Response struct {
	Cart   *Cart  `json:"cart"`
	Totals Totals `json:"totals"`
}

// AddRequest represents an add-to-cart request
type AddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateRequest represents a quantity update; zero removes the item
type UpdateRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// Get loads the cart, discarding it if the expiry window has passed
func (s *Service) Get(ctx context.Context, ownerKey string) (*Response, error) {
	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return s.respond(cart), nil
}

// Add puts a product into the cart. The GST-inclusive price is derived from
// the catalog base price and rate exactly once, here; later quantity updates
// and catalog rate changes never touch it.
func (s *Service) Add(ctx context.Context, ownerKey string, req *AddRequest) (*Response, error) {
	product, err := s.catalog.Lookup(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}
	if product == nil || !product.Active {
		return nil, apperrors.NewValidation("product_id", "product not found or inactive")
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	if existing := cart.Find(product.ID); existing != nil {
		existing.Quantity += req.Quantity
	} else {
		rate := pricing.NormalizeRate(product.GSTRate)
		cart.Items = append(cart.Items, pricing.Line{
			ID:        product.ID,
			Name:      product.Name,
			BasePrice: product.BasePrice,
			Price:     pricing.InclusivePrice(product.BasePrice, rate),
			Quantity:  req.Quantity,
			GSTRate:   rate,
		})
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.respond(cart), nil
}

// UpdateQuantity changes an item's quantity; zero removes the item
func (s *Service) UpdateQuantity(ctx context.Context, ownerKey, itemID string, req *UpdateRequest) (*Response, error) {
	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	if req.Quantity == 0 {
		if !cart.Remove(itemID) {
			return nil, apperrors.NewValidation("item_id", "item not found in cart")
		}
	} else {
		line := cart.Find(itemID)
		if line == nil {
			return nil, apperrors.NewValidation("item_id", "item not found in cart")
		}
		line.Quantity = req.Quantity
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.respond(cart), nil
}

// RemoveItem removes an item from the cart
func (s *Service) RemoveItem(ctx context.Context, ownerKey, itemID string) (*Response, error) {
	return s.UpdateQuantity(ctx, ownerKey, itemID, &UpdateRequest{Quantity: 0})
}

// Clear removes the whole cart
func (s *Service) Clear(ctx context.Context, ownerKey string) error {
	return s.store.Delete(ctx, ownerKey)
}

// Lines returns the raw cart lines for checkout
func (s *Service) Lines(ctx context.Context, ownerKey string) ([]pricing.Line, error) {
	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *Service) load(ctx context.Context, ownerKey string) (*Cart, error) {
	if ownerKey == "" {
		return nil, apperrors.NewValidation("owner_key", "cart owner key required")
	}

	cart, err := s.store.Load(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if cart == nil || cart.IsExpired(now) {
		if cart != nil {
			// stale cart, discard rather than serve old prices
			_ = s.store.Delete(ctx, ownerKey)
		}
		return &Cart{
			OwnerKey:  ownerKey,
			Items:     []pricing.Line{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(s.config.Pricing.CartExpiry),
		}, nil
	}

	return cart, nil
}

func (s *Service) save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	return s.store.Save(ctx, cart, s.config.Pricing.CartExpiry)
}

func (s *Service) respond(cart *Cart) *Response {
	totals := pricing.ComputeTotals(cart.Items)

	summary := Totals{
		ItemCount: len(cart.Items),
		Subtotal:  totals.Subtotal,
		GSTAmount: totals.GSTAmount,
	}
	for _, line := range cart.Items {
		summary.TotalQuantity += line.Quantity
	}

	return &Response{Cart: cart, Totals: summary}
}
