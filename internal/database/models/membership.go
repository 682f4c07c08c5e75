package models

import "github.com/google/uuid"

// Role represents a member's role within an organization
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Satisfies reports whether a holder of this role meets the required role.
// Admin privileges are a superset of member privileges.
func (r Role) Satisfies(required Role) bool {
	if required == RoleAdmin {
		return r == RoleAdmin
	}
	return r == RoleAdmin || r == RoleMember
}

// Membership binds a user to an organization with a role.
// At most one row exists per (user, organization) pair.
type Membership struct {
	BaseModel
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_org"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_org;index"`
	Role           Role      `json:"role" gorm:"type:varchar(20);not null;default:'member'" validate:"required"`

	// Relationships
	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
