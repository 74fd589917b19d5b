package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the gateway's HMAC of the request body.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

var (
	ErrMissingSignature = errors.New("no signature provided")
	ErrInvalidSignature = errors.New("invalid signature")
)

// VerifySignature checks that signature matches the HMAC-SHA256 of the raw
// body under secret, rendered as "sha256=<lowercase hex>". The comparison is
// constant-time. It must be given the exact bytes received on the wire; a
// re-serialized body would produce a different digest.
func VerifySignature(body []byte, signature, secret string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := signaturePrefix + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}
