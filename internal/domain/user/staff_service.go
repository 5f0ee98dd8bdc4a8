// internal/domain/user/staff_service.go
package user

import (
	"fmt"

	"github.com/your-org/franchise-backend/internal/pkg/roles"
	"gorm.io/gorm"
)

// StaffService handles role and account administration. Only owner/admin
// callers reach it; the handlers enforce that.
type StaffService struct {
	db *gorm.DB
}

// NewStaffService creates a new staff management service
func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db}
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Role   string `form:"role"`
	Search string `form:"search"`
}

// UserListResponse represents paginated user list
type UserListResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// ListUsers returns accounts with optional role filter and email search
func (s *StaffService) ListUsers(req *UserListRequest) (*UserListResponse, error) {
	query := s.db.Model(&User{})

	if req.Role != "" {
		role, err := roles.Parse(req.Role)
		if err != nil {
			return nil, err
		}
		query = query.Where("role = ?", role)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var users []User
	err := query.
		Order("created_at DESC").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}
	return &UserListResponse{Users: users, Total: total, Page: req.Page, Limit: req.Limit}, nil
}

// SetRole assigns a role to an account. The string is parsed against the
// closed role set first, so a typo cannot create an unknown role.
func (s *StaffService) SetRole(userID uint, roleName, outletCode string) (*User, error) {
	role, err := roles.Parse(roleName)
	if err != nil {
		return nil, err
	}
	if role == roles.RoleFranchise && outletCode == "" {
		return nil, fmt.Errorf("franchise staff require an outlet code")
	}
	if role != roles.RoleFranchise {
		outletCode = ""
	}

	var u User
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	updates := map[string]interface{}{
		"role":        role,
		"outlet_code": outletCode,
	}
	if err := s.db.Model(&u).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to set role: %w", err)
	}

	u.Password = ""
	return &u, nil
}

// DeactivateUser deactivates an account
func (s *StaffService) DeactivateUser(userID uint) error {
	err := s.db.Model(&User{}).
		Where("id = ?", userID).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// ActivateUser reactivates an account
func (s *StaffService) ActivateUser(userID uint) error {
	err := s.db.Model(&User{}).
		Where("id = ?", userID).
		Update("is_active", true).Error
	if err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	return nil
}
