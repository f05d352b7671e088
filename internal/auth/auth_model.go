package auth

import (
	"time"

	"gorm.io/gorm"
)

// OTP purposes and their expiry windows.
const (
	PurposeRegistration  = "Registration"
	PurposePasswordReset = "PasswordReset"

	RegistrationOtpExpiry  = 10 * time.Minute
	PasswordResetOtpExpiry = 30 * time.Minute

	// A registration may proceed if any used Registration OTP for the
	// email exists within this window.
	RegistrationOtpGrace = 15 * time.Minute
)

// OtpVerification is a single-use code bound to an email and a purpose.
type OtpVerification struct {
	gorm.Model
	Email     string    `gorm:"not null;index" json:"email"`
	Code      string    `gorm:"not null" json:"-"`
	Purpose   string    `gorm:"not null" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Used      bool      `gorm:"default:false" json:"used"`
}

// IsValid reports whether the code can still be redeemed at the given time.
func (o *OtpVerification) IsValid(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}
