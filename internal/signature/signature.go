// Package signature verifies HMAC signatures on inbound webhook bodies.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Verify checks that providedSignature is the base64-encoded HMAC-SHA256
// digest of body keyed by secret. The comparison is constant-time.
// Missing configuration fails closed: an empty secret or an empty signature
// returns false before any digest is computed.
func Verify(body []byte, providedSignature, secret string) bool {
	if secret == "" || providedSignature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(providedSignature))
}

// Sign returns the base64-encoded HMAC-SHA256 digest of body keyed by
// secret. Used by tests and tooling to produce valid signatures.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
