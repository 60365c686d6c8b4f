package gallery

import "time"

type Image struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ImageURL    string    `gorm:"column:image_url;size:255;not null" json:"image_url"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Image) TableName() string { return "images" }

// DescriptionText returns the description or "" when it is unset.
func (i Image) DescriptionText() string {
	if i.Description == nil {
		return ""
	}
	return *i.Description
}

// UserImage pairs one user with one image they saved.
type UserImage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_user_images_pair" json:"user_id"`
	ImageID uint   `gorm:"not null;uniqueIndex:idx_user_images_pair" json:"image_id"`
	Image   *Image `gorm:"constraint:OnDelete:CASCADE" json:"image,omitempty"`
}

func (UserImage) TableName() string { return "user_images" }
