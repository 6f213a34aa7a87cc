package leadgen

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// signatureScheme is the only hashing scheme accepted on the signature
// header, e.g. "sha256=3f1d...".
const signatureScheme = "sha256="

// Signature verification failures, one per reject category. These are what
// callers log; neither the messages nor this package ever expose the secret
// or a computed digest value.
var (
	ErrSignatureMissing   = errors.New("signature header missing")
	ErrSecretMissing      = errors.New("app secret not configured")
	ErrSignatureMalformed = errors.New("signature header malformed")
	ErrSignatureLength    = errors.New("signature digest length mismatch")
	ErrSignatureMismatch  = errors.New("signature digest mismatch")
)

// VerifyWebhookSignature checks that rawBody was signed with appSecret.
// rawBody must be the exact bytes the provider transmitted: re-serializing a
// parsed payload changes whitespace and key order and breaks verification.
//
// All structural checks run before any HMAC is computed; the digest length
// is checked before the constant-time comparison. A missing secret fails
// closed.
func VerifyWebhookSignature(rawBody []byte, signatureHeader, appSecret string) error {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(appSecret)

	if sig == "" {
		return ErrSignatureMissing
	}
	if secret == "" {
		return ErrSecretMissing
	}
	if !strings.HasPrefix(strings.ToLower(sig), signatureScheme) {
		return ErrSignatureMalformed
	}

	digest, err := hex.DecodeString(strings.ToLower(sig[len(signatureScheme):]))
	if err != nil {
		return ErrSignatureMalformed
	}
	if len(digest) != sha256.Size {
		return ErrSignatureLength
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	if !hmac.Equal(mac.Sum(nil), digest) {
		return ErrSignatureMismatch
	}
	return nil
}
