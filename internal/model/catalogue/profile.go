package catalogue

// Profile is created together with its User. Username is copied at creation
// and is not kept in sync afterwards.
type Profile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	Username string `gorm:"size:80;not null" json:"username"`
	Games    []Game `gorm:"many2many:profile_games;constraint:OnDelete:CASCADE" json:"games,omitempty"`
}
