package ghsync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

// sign computes the hex HMAC-SHA256 signature GitHub would send.
func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerify_ValidSignature(t *testing.T) {
	body := []byte(`{"action":"closed","issue":{"number":42}}`)
	v := NewVerifier("topsecret")

	if !v.Verify(body, sign("topsecret", body)) {
		t.Error("valid signature rejected")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	body := []byte(`{"zen":"Design for failure."}`)
	v := NewVerifier("topsecret")

	if v.Verify(body, sign("othersecret", body)) {
		t.Error("signature from a different secret accepted")
	}
}

func TestVerify_MutatedBody(t *testing.T) {
	body := []byte(`{"action":"closed"}`)
	sig := sign("topsecret", body)
	v := NewVerifier("topsecret")

	mutated := append([]byte(nil), body...)
	mutated[0] ^= 0x01
	if v.Verify(mutated, sig) {
		t.Error("single-bit body mutation accepted")
	}
}

func TestVerify_MutatedSignature(t *testing.T) {
	body := []byte(`{"action":"closed"}`)
	sig := sign("topsecret", body)
	v := NewVerifier("topsecret")

	// Flip the last hex digit.
	last := sig[len(sig)-1]
	var flipped byte = '0'
	if last == '0' {
		flipped = '1'
	}
	if v.Verify(body, sig[:len(sig)-1]+string(flipped)) {
		t.Error("mutated signature accepted")
	}
}

func TestVerify_MissingSignature(t *testing.T) {
	v := NewVerifier("topsecret")
	if v.Verify([]byte("{}"), "") {
		t.Error("empty signature accepted")
	}
}

// An unconfigured secret must fail closed: there is no bypass mode.
func TestVerify_EmptySecretRejectsEverything(t *testing.T) {
	body := []byte("{}")
	v := NewVerifier("")

	if v.Verify(body, sign("", body)) {
		t.Error("empty secret accepted a delivery signed with the empty secret")
	}
	if v.Verify(body, "") {
		t.Error("empty secret accepted an unsigned delivery")
	}
}
