package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type OtpRepository interface {
	CreateOtp(o *OtpVerification) error
	FindActiveOtp(email, code, purpose string, now time.Time) (*OtpVerification, error)
	MarkUsed(o *OtpVerification) error
	HasRecentUsedOtp(email, purpose string, since time.Time) (bool, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) CreateOtp(o *OtpVerification) error {
	return r.db.Create(o).Error
}

// FindActiveOtp returns the newest unused, unexpired OTP matching the
// email, code, and purpose, or nil when no such record exists.
func (r *otpRepository) FindActiveOtp(email, code, purpose string, now time.Time) (*OtpVerification, error) {
	var otp OtpVerification
	err := r.db.
		Where("email = ? AND code = ? AND purpose = ? AND used = ? AND expires_at > ?",
			email, code, purpose, false, now).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(o *OtpVerification) error {
	o.Used = true
	return r.db.Model(o).Update("used", true).Error
}

// HasRecentUsedOtp reports whether any redeemed OTP for the email and
// purpose was issued after the given time.
func (r *otpRepository) HasRecentUsedOtp(email, purpose string, since time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&OtpVerification{}).
		Where("email = ? AND purpose = ? AND used = ? AND created_at > ?", email, purpose, true, since).
		Count(&count).Error
	return count > 0, err
}
