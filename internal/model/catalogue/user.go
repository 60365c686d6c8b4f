package catalogue

import (
	"time"

	"showcase/internal/model"
	"showcase/internal/pkg/password"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:80;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password;size:200;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) AccountID() uint         { return u.ID }
func (u *User) AccountUsername() string { return u.Username }
func (u *User) AccountEmail() string    { return u.Email }

func (u *User) CheckPassword(plain string) bool {
	return password.Check(u.PasswordHash, plain)
}

func (u *User) HasRole(role string) bool {
	if u.Role == "" {
		return role == model.RoleUser
	}
	return u.Role == role
}
