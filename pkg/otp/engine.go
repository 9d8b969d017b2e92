package otp

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// DefaultDigits is the code length used when Config.Digits is zero.
	DefaultDigits = 6
	// DefaultPeriod is the TOTP time-step in seconds used when Config.Period is zero.
	DefaultPeriod = 30
	// DefaultSkew is the verification window used when Config.Skew is zero.
	DefaultSkew = 1

	// maxDigits bounds the code length. The truncated HMAC value is a 31-bit
	// integer, so it never has more than 10 decimal digits.
	maxDigits = 10
)

// Config holds OTP engine configuration.
type Config struct {
	// Secret is the base32-encoded shared secret key.
	// When empty, a fresh random secret is generated.
	Secret string
	// Algorithm specifies the hash algorithm to use.
	// Default: SHA1
	Algorithm Algorithm
	// Digits specifies the number of digits in emitted codes (1-10).
	// Default: 6
	Digits uint
	// Period specifies the TOTP time-step in seconds.
	// Default: 30
	Period uint
	// Skew specifies the number of time-steps checked before and after the
	// current step during TOTP verification (tolerance for clock skew).
	// Default: 1
	Skew uint
}

// Engine derives and verifies HOTP (RFC 4226) and TOTP (RFC 6238) codes.
// An Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	secret    Secret
	algorithm Algorithm
	digits    uint
	period    uint
	skew      uint
}

// New creates an Engine from the supplied configuration.
// The configuration is validated and defaults are applied; an engine is
// never returned in a state that can fail during code generation.
func New(cfg Config) (*Engine, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmSHA1
	}
	if err := cfg.Algorithm.validate(); err != nil {
		return nil, err
	}

	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Digits > maxDigits {
		return nil, fmt.Errorf("%w: digits must be between 1 and %d", ErrInvalidConfig, maxDigits)
	}

	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Skew == 0 {
		cfg.Skew = DefaultSkew
	}

	var secret Secret
	var err error
	if cfg.Secret == "" {
		secret, err = GenerateSecret()
	} else {
		secret, err = NewSecret(cfg.Secret)
	}
	if err != nil {
		return nil, err
	}

	return &Engine{
		secret:    secret,
		algorithm: cfg.Algorithm,
		digits:    cfg.Digits,
		period:    cfg.Period,
		skew:      cfg.Skew,
	}, nil
}

// Generate is a convenience constructor identical to New. It reads naturally
// when the configuration omits a secret and the engine generates one.
func Generate(cfg Config) (*Engine, error) {
	return New(cfg)
}

// Secret returns the engine's shared secret.
func (e *Engine) Secret() Secret { return e.secret }

// Algorithm returns the configured hash algorithm.
func (e *Engine) Algorithm() Algorithm { return e.algorithm }

// Digits returns the configured code length.
func (e *Engine) Digits() uint { return e.digits }

// Period returns the configured TOTP time-step in seconds.
func (e *Engine) Period() uint { return e.period }

// Skew returns the configured TOTP verification window.
func (e *Engine) Skew() uint { return e.skew }

// HOTP derives the code for the given counter value per RFC 4226: the
// counter is encoded as 8 big-endian bytes, HMACed with the secret, and
// dynamically truncated to a 31-bit integer reduced modulo 10^digits.
// The result is deterministic and always exactly Digits characters,
// zero-padded on the left.
func (e *Engine) HOTP(counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(e.algorithm.hasher(), e.secret.raw)
	mac.Write(msg[:])
	digest := mac.Sum(nil)

	// Dynamic truncation (RFC 4226 §5.3): the low nibble of the last digest
	// byte selects a 4-byte window; the top bit is masked to keep the value
	// a non-negative 31-bit integer.
	offset := digest[len(digest)-1] & 0x0f
	value := uint32(digest[offset]&0x7f)<<24 |
		uint32(digest[offset+1])<<16 |
		uint32(digest[offset+2])<<8 |
		uint32(digest[offset+3])

	return fmt.Sprintf("%0*d", int(e.digits), uint64(value)%pow10(e.digits))
}

// VerifyHOTP reports whether code matches the code for the exact counter.
// The comparison is constant-time. The engine keeps no counter state; the
// caller is responsible for advancing the counter on success.
func (e *Engine) VerifyHOTP(code string, counter uint64) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(e.HOTP(counter))) == 1
}

// TOTPOpts overrides TOTP generation inputs for a single call.
// Overrides are call-scoped and never persisted on the engine.
type TOTPOpts struct {
	// Time is the generation timestamp. Zero value: current time.
	Time time.Time
	// Period overrides the engine's time-step in seconds. Zero: engine period.
	Period uint
}

// TOTP derives the code for the current time using the engine's period.
func (e *Engine) TOTP() string {
	return e.TOTPCustom(TOTPOpts{})
}

// TOTPAt derives the code for the given timestamp using the engine's period.
// Timestamps within the same period-aligned bucket yield identical codes.
func (e *Engine) TOTPAt(t time.Time) string {
	return e.TOTPCustom(TOTPOpts{Time: t})
}

// TOTPCustom derives the code for the timestamp and period in opts.
func (e *Engine) TOTPCustom(opts TOTPOpts) string {
	return e.HOTP(e.counterAt(opts.Time, opts.Period))
}

// VerifyOpts overrides TOTP verification inputs for a single call.
// Unlike the engine-level methods, Skew is used literally: zero checks only
// the exact current time-step.
type VerifyOpts struct {
	// Time is the verification timestamp. Zero value: current time.
	Time time.Time
	// Period overrides the engine's time-step in seconds. Zero: engine period.
	Period uint
	// Skew is the number of time-steps accepted before and after Time.
	Skew uint
}

// VerifyTOTP reports whether code is valid at the current time, accepting
// codes within the engine's configured skew window.
func (e *Engine) VerifyTOTP(code string) bool {
	return e.VerifyTOTPCustom(code, VerifyOpts{Skew: e.skew})
}

// VerifyTOTPAt reports whether code is valid at the given timestamp,
// accepting codes within the engine's configured skew window.
func (e *Engine) VerifyTOTPAt(code string, t time.Time) bool {
	return e.VerifyTOTPCustom(code, VerifyOpts{Time: t, Skew: e.skew})
}

// VerifyTOTPCustom reports whether code matches any time-step in the
// inclusive window [base-skew, base+skew] around the timestamp's step,
// checked from earliest to latest with constant-time comparison.
func (e *Engine) VerifyTOTPCustom(code string, opts VerifyOpts) bool {
	base := e.counterAt(opts.Time, opts.Period)

	start := base - uint64(opts.Skew)
	if start > base { // underflow below counter zero
		start = 0
	}
	end := base + uint64(opts.Skew)
	if end < base { // overflow past the last counter
		end = base
	}

	for counter := start; ; counter++ {
		if subtle.ConstantTimeCompare([]byte(code), []byte(e.HOTP(counter))) == 1 {
			return true
		}
		if counter == end {
			return false
		}
	}
}

// counterAt maps a timestamp to its TOTP counter: floor(unix / period).
func (e *Engine) counterAt(t time.Time, period uint) uint64 {
	if t.IsZero() {
		t = time.Now()
	}
	if period == 0 {
		period = e.period
	}

	unix := t.Unix()
	if unix < 0 {
		unix = 0
	}
	return uint64(unix) / uint64(period)
}

// pow10 returns 10^n for n <= maxDigits.
func pow10(n uint) uint64 {
	result := uint64(1)
	for i := uint(0); i < n; i++ {
		result *= 10
	}
	return result
}
