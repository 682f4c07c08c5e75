package models

import "github.com/google/uuid"

// Organization represents the root entity for multi-tenancy
type Organization struct {
	BaseModel
	Name      string    `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:50" validate:"required,max=50"`
	CreatorID uuid.UUID `json:"creator_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Projects    []Project    `json:"projects,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Invitations []Invitation `json:"invitations,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
