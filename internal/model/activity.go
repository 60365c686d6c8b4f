package model

import "time"

const (
	ActivityRegistered     = "account.registered"
	ActivityLoggedIn       = "account.logged_in"
	ActivityLoggedOut      = "account.logged_out"
	ActivityContentCreated = "content.created"
	ActivityProfileSaved   = "profile.saved"
)

// ActivityEvent is published on the activity queue and persisted by the
// activity worker.
type ActivityEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Kind       string    `gorm:"size:64;not null;index" json:"kind"`
	AccountID  uint      `gorm:"index" json:"account_id"`
	Subject    string    `gorm:"size:255" json:"subject"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}
