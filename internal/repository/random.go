package repository

import "gorm.io/gorm"

// RandomOrder returns the dialect's ORDER BY expression for a uniform shuffle.
func RandomOrder(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

// ClampLimit keeps limit within [1, max].
func ClampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
