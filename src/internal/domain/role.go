package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
)

// CanOpenAccounts reports whether the role is allowed to open accounts on
// behalf of customers.
func (r Role) CanOpenAccounts() bool {
	return r == RoleEmployee || r == RoleManager
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleManager:
		return true
	}
	return false
}
