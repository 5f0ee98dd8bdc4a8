// internal/pkg/roles/roles.go
package roles

import "fmt"

// Role is a closed set of portal roles. New roles must be added here and to
// the permission table below; unknown strings fail at Parse rather than
// falling through silently.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleAdmin     Role = "admin"
	RoleFranchise Role = "franchise"
	RoleCustomer  Role = "customer"
)

// Permission identifies an operation a role may perform on an order
type Permission string

const (
	PermConfirmOrder    Permission = "order:confirm"
	PermStartPacking    Permission = "order:pack"
	PermRecordShipment  Permission = "order:ship"
	PermConfirmDelivery Permission = "order:deliver"
	PermCancelOrder     Permission = "order:cancel"
	PermSetDeliveryFee  Permission = "order:set_delivery_fee"
	PermViewAllOrders   Permission = "order:view_all"
	PermDownloadInvoice Permission = "invoice:download"
	PermAdjustLoyalty   Permission = "loyalty:adjust"
)

var permissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermConfirmOrder:    true,
		PermStartPacking:    true,
		PermRecordShipment:  true,
		PermConfirmDelivery: true,
		PermCancelOrder:     true,
		PermSetDeliveryFee:  true,
		PermViewAllOrders:   true,
		PermDownloadInvoice: true,
		PermAdjustLoyalty:   true,
	},
	RoleAdmin: {
		PermConfirmOrder:    true,
		PermStartPacking:    true,
		PermRecordShipment:  true,
		PermConfirmDelivery: true,
		PermCancelOrder:     true,
		PermSetDeliveryFee:  true,
		PermViewAllOrders:   true,
		PermDownloadInvoice: true,
		PermAdjustLoyalty:   true,
	},
	RoleFranchise: {
		PermConfirmDelivery: true,
		PermCancelOrder:     true,
		PermDownloadInvoice: true,
	},
	RoleCustomer: {
		PermConfirmDelivery: true,
		PermDownloadInvoice: true,
	},
}

// Parse converts a stored role string into a Role
func Parse(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleFranchise, RoleCustomer:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Can reports whether the role is allowed to perform the operation
func (r Role) Can(p Permission) bool {
	return permissions[r][p]
}

// IsStaff reports whether the role acts on orders on behalf of the company
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleAdmin
}

// String implements fmt.Stringer
func (r Role) String() string {
	return string(r)
}
