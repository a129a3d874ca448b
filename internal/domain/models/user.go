package models

// Role names seeded by migration.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleStaff      = "staff"
	RoleViewer     = "viewer"
)

// AdminUser is a role-bearing operator. created_by is a nullable self edge;
// the seeded rows keep it null.
type AdminUser struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name,omitempty"`
	IsActive  bool     `json:"is_active"`
	Roles     []string `json:"roles,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	LastLogin string   `json:"last_login,omitempty"`
	CreatedBy *int64   `json:"created_by,omitempty"`
}
