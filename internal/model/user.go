package model

// User represents a registered account that can create CFPs and trigger
// Slack notifications.
type User struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Email          string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string  `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsActive       bool    `json:"is_active" gorm:"default:true"`
	SlackUserID    *string `json:"slack_user_id,omitempty" gorm:"uniqueIndex;size:64"`
	SlackChannelID *string `json:"slack_channel_id,omitempty" gorm:"size:64"`

	// Relations
	CFPs []CFP `json:"-" gorm:"foreignKey:CreatedByID"`
}
