package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"owner", "admin", "franchise", "customer"} {
		role, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
	}

	_, err := Parse("superuser")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestPermissions(t *testing.T) {
	assert.True(t, RoleAdmin.Can(PermStartPacking))
	assert.True(t, RoleOwner.Can(PermSetDeliveryFee))

	// customers confirm their own deliveries but never pack or ship
	assert.True(t, RoleCustomer.Can(PermConfirmDelivery))
	assert.False(t, RoleCustomer.Can(PermStartPacking))
	assert.False(t, RoleCustomer.Can(PermRecordShipment))

	assert.False(t, RoleFranchise.Can(PermViewAllOrders))
	assert.True(t, RoleFranchise.Can(PermDownloadInvoice))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, RoleOwner.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleFranchise.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
}
