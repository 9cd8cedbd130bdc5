package enum

// Role is the access level of a user. Roles are fixed: there is no
// user-defined RBAC in a POS deployment.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// CanManageUsers reports whether the role may administer user accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanViewReports reports whether the role may read sales reports.
func (r Role) CanViewReports() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanManageCatalog reports whether the role may edit products, categories and
// customers.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin || r == RoleManager
}
