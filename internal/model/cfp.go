package model

import "time"

// CFP represents a Call for Papers: an event with an open submission window.
// Records are immutable after creation; UpdatedAt is set equal to CreatedAt.
type CFP struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Title          string    `json:"title" gorm:"size:255;not null;index"`
	Description    string    `json:"description" gorm:"type:text"`
	EventName      string    `json:"event_name" gorm:"size:255;not null"`
	EventDate      time.Time `json:"event_date" gorm:"not null"`
	ClosingDate    time.Time `json:"closing_date" gorm:"not null;index"`
	Location       string    `json:"location" gorm:"size:255"`
	TargetAudience string    `json:"target_audience" gorm:"size:255"`
	EventType      string    `json:"event_type" gorm:"size:255"`
	EventURL       string    `json:"event_url" gorm:"size:512"`
	CFPURL         string    `json:"cfp_url" gorm:"size:512"`
	Source         string    `json:"source" gorm:"size:255"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedByID    uint      `json:"created_by_id" gorm:"not null;index"`

	// Relations
	CreatedBy User `json:"-" gorm:"foreignKey:CreatedByID"`
}
