package models

import "time"

// PortalActivityLog records portal-side events (logins, OAuth completions,
// logouts, quote submissions) for auditing. Stored via GORM.
type PortalActivityLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventContext string    `gorm:"index" json:"event_context"`
	EventName    string    `json:"event_name"`
	Description  string    `json:"description"`
	SessionID    string    `gorm:"index" json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
}
