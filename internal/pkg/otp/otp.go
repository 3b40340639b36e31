// Package otp issues and checks the short numeric codes that gate trip phases.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/clock"
	"github.com/piresc/kirimin/internal/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultLength      = 6
	defaultTTL         = 10 * time.Minute
	defaultMaxAttempts = 5
)

// CodeSource produces a plaintext numeric code of the given length
type CodeSource func(length int) (string, error)

// Service generates, hashes and checks phase codes
type Service struct {
	length      int
	ttl         time.Duration
	maxAttempts int
	cost        int
	clock       clock.Clock
	codes       CodeSource
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the time source used for expiry
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithCodeSource overrides code generation
func WithCodeSource(src CodeSource) Option {
	return func(s *Service) { s.codes = src }
}

// NewService creates an OTP service from configuration
func NewService(cfg models.OTPConfig, opts ...Option) *Service {
	s := &Service{
		length:      cfg.Length,
		ttl:         time.Duration(cfg.TTLMinutes) * time.Minute,
		maxAttempts: cfg.MaxAttempts,
		cost:        cfg.HashCost,
		clock:       clock.Real(),
		codes:       SecureCode,
	}
	if s.length < 4 || s.length > 6 {
		s.length = defaultLength
	}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	if s.cost < bcrypt.MinCost || s.cost > bcrypt.MaxCost {
		s.cost = bcrypt.DefaultCost
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAttempts is the number of verifications allowed per issued code
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// Issue generates a new code for phase and hashes it
func (s *Service) Issue(phase models.OtpPhase) (*models.OtpIssue, error) {
	code, err := s.codes(s.length)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}

	return &models.OtpIssue{
		Phase:     phase,
		Code:      code,
		Hash:      string(hash),
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}, nil
}

// ValidateFormat rejects codes that are not exactly the configured number of digits
func (s *Service) ValidateFormat(code string) error {
	if len(code) != s.length {
		return apperror.Validation("otp must be %d digits", s.length)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return apperror.Validation("otp must be numeric")
		}
	}
	return nil
}

// Locked reports whether the record has exhausted its attempts
func (s *Service) Locked(record models.OtpRecord) bool {
	return record.Attempts >= s.maxAttempts
}

// Check compares code against record without mutating anything. The caller
// is responsible for persisting the attempt regardless of the outcome.
func (s *Service) Check(record models.OtpRecord, code string) error {
	if s.Locked(record) {
		return apperror.InvalidOtp(apperror.ReasonLocked)
	}
	if record.Hash == "" || record.ExpiresAt == nil || s.clock.Now().After(*record.ExpiresAt) {
		return apperror.InvalidOtp(apperror.ReasonExpired)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.Hash), []byte(code)); err != nil {
		return apperror.InvalidOtp(apperror.ReasonWrongCode)
	}
	return nil
}

// SecureCode draws a zero-padded numeric code from crypto/rand
func SecureCode(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}
