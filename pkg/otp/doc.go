// Package otp implements HOTP (RFC 4226) and TOTP (RFC 6238) one-time
// password generation and verification.
//
// The RFC algorithms are implemented in this package: HMAC over the
// big-endian counter, dynamic truncation, and time/counter-windowed
// verification. Codes are interoperable with authenticator apps like Google
// Authenticator and Authy, and with hardware HOTP tokens.
//
// # Engine
//
// The Engine is the low-level surface. It is immutable after construction
// and every derivation is a pure function of (secret, algorithm, digits,
// counter):
//
//	engine, err := otp.New(otp.Config{
//	    Secret:    "JBSWY3DPEHPK3PXP",
//	    Algorithm: otp.AlgorithmSHA1,
//	    Digits:    6,
//	    Period:    30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code := engine.TOTP()          // code for the current time-step
//	code = engine.HOTP(42)         // code for counter 42
//
//	ok := engine.VerifyTOTP(code)  // current time, configured skew
//	ok = engine.VerifyHOTP(code, 42)
//
// Leaving Config.Secret empty generates a fresh 160-bit random secret,
// available afterwards via engine.Secret().
//
// Per-call overrides never mutate the engine:
//
//	code := engine.TOTPCustom(otp.TOTPOpts{Time: t, Period: 60})
//	ok := engine.VerifyTOTPCustom(code, otp.VerifyOpts{Time: t, Period: 60, Skew: 0})
//
// # Authenticator
//
// The Authenticator wraps an Engine with a context-aware validation surface
// for use in authentication services:
//
//	auth, err := otp.NewAuthenticator(otp.AuthenticatorConfig{
//	    Type:   otp.TypeTOTP,
//	    Secret: "JBSWY3DPEHPK3PXP",
//	    Skew:   1, // Allow 1 period of clock skew
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a code from the user's authenticator app
//	err = auth.Authenticate(ctx, "123456")
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
// For HOTP the caller owns the counter; ValidateCounter returns the value
// to store after a successful validation:
//
//	newCounter, err := auth.ValidateCounter(ctx, "123456", currentCounter)
//	if err == nil {
//	    currentCounter = newCounter
//	}
//
// # Secret Generation
//
// Generate a cryptographically random secret:
//
//	secret, err := otp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// secret.String() is the base32 form to store and share
//
// # Hash Algorithms
//
// The package supports a closed set of hash algorithms:
//   - AlgorithmSHA1 (default, widely supported)
//   - AlgorithmSHA256
//   - AlgorithmSHA512
//
// Note that not all authenticator apps support SHA256 and SHA512.
//
// # Thread Safety
//
// Engine and Authenticator are immutable after construction and safe for
// concurrent use. Multiple goroutines can call their methods simultaneously.
//
// # Security
//
// Code comparison during verification is constant-time to avoid leaking
// partial-match information through timing. Secret generation uses
// crypto/rand exclusively; a randomness failure is returned as an error
// rather than falling back to a weaker source.
package otp
