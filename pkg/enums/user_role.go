package enums

// UserRole separates storefront customers from back-office admins.
type UserRole string

const (
	RoleBusiness UserRole = "business"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleBusiness, RoleAdmin:
		return true
	}
	return false
}
