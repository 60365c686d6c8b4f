package gallery

import (
	"time"

	"showcase/internal/pkg/password"
)

type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string      `gorm:"size:80;not null;uniqueIndex" json:"email"`
	PasswordHash string      `gorm:"column:password;size:200;not null" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	Images       []UserImage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "user" }

func (u *User) AccountID() uint         { return u.ID }
func (u *User) AccountUsername() string { return u.Username }
func (u *User) AccountEmail() string    { return u.Email }

func (u *User) CheckPassword(plain string) bool {
	return password.Check(u.PasswordHash, plain)
}
