package models

import "github.com/google/uuid"

// Project belongs to an organization and groups tasks
type Project struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	CreatorID      uuid.UUID `json:"creator_id" gorm:"type:uuid;not null"`
	Name           string    `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Description    string    `json:"description" gorm:"size:500" validate:"max=500"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Tasks        []Task        `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
