package models

// User represents an account that can authenticate and hold memberships
type User struct {
	BaseModel
	FullName     string `json:"full_name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`

	// Relationships
	Memberships     []Membership `json:"memberships,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SentInvitations []Invitation `json:"sent_invitations,omitempty" gorm:"foreignKey:InviterID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
