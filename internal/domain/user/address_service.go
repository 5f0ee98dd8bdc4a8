// internal/domain/user/address_service.go
package user

import (
	"fmt"

	"gorm.io/gorm"
)

// AddressService manages a customer's saved shipping addresses
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddressRequest represents address creation/update data
type AddressRequest struct {
	Label        string `json:"label"`
	Name         string `json:"name" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	IsDefault    bool   `json:"is_default"`
}

// ListAddresses returns a user's saved addresses, default first
func (s *AddressService) ListAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// GetAddress returns one of the user's addresses
func (s *AddressService) GetAddress(userID, addressID uint) (*Address, error) {
	var addr Address
	err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&addr).Error
	if err != nil {
		return nil, fmt.Errorf("address not found")
	}
	return &addr, nil
}

// CreateAddress saves a new address for the user
func (s *AddressService) CreateAddress(userID uint, req *AddressRequest) (*Address, error) {
	addr := Address{
		UserID:       userID,
		Label:        req.Label,
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(&addr).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &addr, nil
}

// UpdateAddress updates one of the user's addresses
func (s *AddressService) UpdateAddress(userID, addressID uint, req *AddressRequest) (*Address, error) {
	addr, err := s.GetAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !addr.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}
		return tx.Model(addr).Updates(map[string]interface{}{
			"label":         req.Label,
			"name":          req.Name,
			"address_line1": req.AddressLine1,
			"address_line2": req.AddressLine2,
			"city":          req.City,
			"state":         req.State,
			"postal_code":   req.PostalCode,
			"phone":         req.Phone,
			"is_default":    req.IsDefault,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return addr, nil
}

// DeleteAddress removes one of the user's addresses
func (s *AddressService) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}

// SetDefaultAddress marks one address as the checkout default
func (s *AddressService) SetDefaultAddress(userID, addressID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.clearDefault(tx, userID); err != nil {
			return err
		}
		result := tx.Model(&Address{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if result.Error != nil {
			return fmt.Errorf("failed to set default address: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("address not found")
		}
		return nil
	})
}

func (s *AddressService) clearDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
