package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/franchise-backend/internal/config"
	"github.com/your-org/franchise-backend/internal/pkg/roles"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a second pooled connection would see its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &Address{}))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-that-is-long-enough-000"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Security.BcryptCost = 4
	return cfg
}

func register(t *testing.T, s *Service, email string) *AuthResponse {
	t.Helper()
	resp, err := s.Register(&RegisterRequest{
		Email:           email,
		Password:        "Chai&Biscuits42",
		ConfirmPassword: "Chai&Biscuits42",
		FirstName:       "Asha",
		LastName:        "Rao",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterAlwaysCreatesCustomer(t *testing.T) {
	s := NewService(newTestDB(t), testConfig())

	resp := register(t, s, "Asha@Example.com")

	assert.Equal(t, roles.RoleCustomer, resp.User.Role)
	// email is normalized on create
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Empty(t, resp.User.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := NewService(newTestDB(t), testConfig())

	register(t, s, "asha@example.com")
	_, err := s.Register(&RegisterRequest{
		Email:           "asha@example.com",
		Password:        "Chai&Biscuits42",
		ConfirmPassword: "Chai&Biscuits42",
		FirstName:       "Asha",
		LastName:        "Rao",
	})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	s := NewService(newTestDB(t), testConfig())
	register(t, s, "asha@example.com")

	_, err := s.Login(&LoginRequest{Email: "asha@example.com", Password: "WrongPass99!"})
	assert.Error(t, err)
}

func TestRefreshPicksUpRoleChange(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db, testConfig())
	staff := NewStaffService(db)

	resp := register(t, s, "asha@example.com")

	_, err := staff.SetRole(resp.User.ID, "admin", "")
	require.NoError(t, err)

	refreshed, err := s.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, roles.RoleAdmin, refreshed.User.Role)
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db, testConfig())
	staff := NewStaffService(db)

	resp := register(t, s, "asha@example.com")
	require.NoError(t, staff.DeactivateUser(resp.User.ID))

	_, err := s.RefreshToken(resp.RefreshToken)
	assert.Error(t, err)
}

func TestUpdateProfileStripsPrivilegedFields(t *testing.T) {
	s := NewService(newTestDB(t), testConfig())
	resp := register(t, s, "asha@example.com")

	updated, err := s.UpdateProfile(resp.User.ID, map[string]interface{}{
		"first_name": "Anita",
		"role":       "owner",
		"is_active":  false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Anita", updated.FirstName)
	assert.Equal(t, roles.RoleCustomer, updated.Role)
	assert.True(t, updated.IsActive)
}

func TestSetRoleFranchiseRequiresOutlet(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db, testConfig())
	staff := NewStaffService(db)

	resp := register(t, s, "asha@example.com")

	_, err := staff.SetRole(resp.User.ID, "franchise", "")
	assert.Error(t, err)

	u, err := staff.SetRole(resp.User.ID, "franchise", "HYD-014")
	require.NoError(t, err)
	assert.Equal(t, roles.RoleFranchise, u.Role)
	assert.Equal(t, "HYD-014", u.OutletCode)

	// moving back off franchise clears the outlet code
	u, err = staff.SetRole(resp.User.ID, "customer", "")
	require.NoError(t, err)
	assert.Empty(t, u.OutletCode)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db, testConfig())
	staff := NewStaffService(db)

	resp := register(t, s, "asha@example.com")

	_, err := staff.SetRole(resp.User.ID, "superuser", "")
	assert.Error(t, err)
}

func TestDefaultAddressIsExclusive(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db, testConfig())
	addresses := NewAddressService(db)

	resp := register(t, s, "asha@example.com")

	first, err := addresses.CreateAddress(resp.User.ID, &AddressRequest{
		Label:        "home",
		Name:         "Asha Rao",
		AddressLine1: "12 Jubilee Hills",
		City:         "Hyderabad",
		State:        "Telangana",
		PostalCode:   "500033",
		IsDefault:    true,
	})
	require.NoError(t, err)

	second, err := addresses.CreateAddress(resp.User.ID, &AddressRequest{
		Label:        "work",
		Name:         "Asha Rao",
		AddressLine1: "4 Hitec City",
		City:         "Hyderabad",
		State:        "Telangana",
		PostalCode:   "500081",
		IsDefault:    true,
	})
	require.NoError(t, err)

	list, err := addresses.ListAddresses(resp.User.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// the default comes first and is the only default
	assert.Equal(t, second.ID, list[0].ID)
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	got, err := addresses.GetAddress(resp.User.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
}
