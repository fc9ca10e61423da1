package models

// Staff roles carried in the JWT role claim.
const (
	RoleAdmin = "admin"
	RoleSale  = "sale"
	RoleIPOS  = "ipos"
)
