package models

// User defines the structure for login accounts across all roles.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"index"`
}
