package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const otpTTL = 5 * time.Minute

var ErrInvalidOtp = errors.New("invalid or expired OTP")

// OtpCache is a time-bounded key-value store for pending codes, keyed by
// email. Satisfied by github.com/patrickmn/go-cache.
type OtpCache interface {
	Set(key string, value interface{}, ttl time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
}

type OtpMailer interface {
	SendOtpEmail(to, otp string) error
}

type OtpService struct {
	cache  OtpCache
	mailer OtpMailer
}

func NewOtpService(cache OtpCache, mailer OtpMailer) *OtpService {
	return &OtpService{
		cache:  cache,
		mailer: mailer,
	}
}

// GenerateOtp stores a fresh 6-digit code for the email and returns it.
// A previously pending code for the same email is replaced.
func (s *OtpService) GenerateOtp(email string) string {
	otp := fmt.Sprintf("%06d", rand.Intn(1000000))
	s.cache.Set(email, otp, otpTTL)

	return otp
}

// SendOtp generates a code and emails it to the target address.
func (s *OtpService) SendOtp(email string) error {
	otp := s.GenerateOtp(email)

	if err := s.mailer.SendOtpEmail(email, otp); err != nil {
		return fmt.Errorf("s.mailer.SendOtpEmail -> %w", err)
	}

	return nil
}

// ValidateOtp is single-use: a successful validation immediately invalidates
// the stored code so a replay fails.
func (s *OtpService) ValidateOtp(email, otp string) bool {
	stored, found := s.cache.Get(email)
	if !found {
		return false
	}

	storedOtp, ok := stored.(string)
	if !ok || storedOtp != otp {
		return false
	}

	s.cache.Delete(email)

	return true
}
