package ghsync

import (
	"github.com/google/go-github/v68/github"
)

// Verifier checks webhook payload signatures against the shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given shared secret. An empty
// secret produces a verifier that rejects everything: an unconfigured hook
// fails closed rather than accepting unsigned deliveries.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify reports whether signature is a valid HMAC of body under the shared
// secret. body must be the raw request bytes exactly as received; verifying
// a re-serialized payload would break on whitespace and key-order changes.
func (v *Verifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 {
		return false
	}
	if signature == "" {
		return false
	}
	return github.ValidateSignature(signature, body, v.secret) == nil
}
