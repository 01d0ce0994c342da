package domain

import "time"

// Role determines which capabilities a user holds (see internal/permission).
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RolePM       Role = "pm"
	RoleSales    Role = "sales"
	RoleCRM      Role = "crm"
	RoleFinance  Role = "finance"
	RoleLegal    Role = "legal"
	RoleAuditor  Role = "auditor"
)

// User is an operator of the system. The engine only reads it: the role
// feeds the permission gate and the ID becomes the sales owner on holds
// placed by sales or CRM users.
type User struct {
	ID              string    `json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            Role      `json:"role"`
	ReportsToUserID *string   `json:"reports_to_user_id"`
	Active          bool      `json:"active"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
