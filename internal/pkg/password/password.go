package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// placeholderHash is compared against when no account matches so a failed
// login costs the same whether or not the username exists.
const placeholderHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

func Check(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Burn spends one bcrypt comparison without a real hash.
func Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(placeholderHash), []byte(plain))
}
