package model

// Authenticatable is implemented by every account type that can log in.
type Authenticatable interface {
	AccountID() uint
	AccountUsername() string
	AccountEmail() string
	CheckPassword(plain string) bool
}

// RoleHolder is implemented by accounts that carry a role.
type RoleHolder interface {
	HasRole(role string) bool
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AccountDraft carries a validated registration ready to be persisted.
type AccountDraft struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
}
