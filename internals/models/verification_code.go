package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode is a one-time email verification entry. A row past its
// ExpiresAt is treated as absent by the store even before the janitor
// physically removes it.
type VerificationCode struct {
	gorm.Model
	Email     string    `gorm:"column:email;index"`
	Code      string    `gorm:"column:code"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
}
