package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"column:username"`
	Email    string `gorm:"column:email;uniqueIndex"`
	Password string `gorm:"column:password"` // bcrypt hash, never plaintext
	Verified bool   `gorm:"column:verified;default:false"`
}
