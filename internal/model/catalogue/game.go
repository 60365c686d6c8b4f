package catalogue

import "time"

type Game struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:120;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ReleaseYear int         `json:"release_year"`
	CreatedAt   time.Time   `json:"created_at"`
	Genres      []Genre     `gorm:"many2many:game_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	Developers  []Developer `gorm:"many2many:game_developers;constraint:OnDelete:CASCADE" json:"developers,omitempty"`
	Platforms   []Platform  `gorm:"many2many:game_platforms;constraint:OnDelete:CASCADE" json:"platforms,omitempty"`
}
