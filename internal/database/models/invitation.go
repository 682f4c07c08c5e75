package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus represents the lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// IsTerminal reports whether the status admits no further transitions
func (s InvitationStatus) IsTerminal() bool {
	return s == InvitationAccepted || s == InvitationExpired || s == InvitationRevoked
}

// Invitation is a time-bounded offer of membership in an organization,
// created by an admin and redeemable by the invited email's owner.
type Invitation struct {
	BaseModel
	OrganizationID uuid.UUID        `json:"organization_id" gorm:"type:uuid;not null;index:idx_invitations_org_email"`
	InviterID      uuid.UUID        `json:"inviter_id" gorm:"type:uuid;not null;index"`
	Email          string           `json:"email" gorm:"not null;size:255;index:idx_invitations_org_email" validate:"required,email,max=255"`
	Token          string           `json:"-" gorm:"uniqueIndex;not null;size:255"`
	Role           Role             `json:"role" gorm:"type:varchar(20);not null;default:'member'" validate:"required"`
	Status         InvitationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ExpiresAt      time.Time        `json:"expires_at" gorm:"not null"`
	AcceptedAt     *time.Time       `json:"accepted_at,omitempty"`

	// Relationships
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Inviter      *User         `json:"inviter,omitempty" gorm:"foreignKey:InviterID"`
}

// IsExpired reports whether the invitation is past its expiry horizon
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// TableName returns the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}
