package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	body := []byte(`{"from":"6285890392419@s.whatsapp.net","message":{"text":"ping"}}`)
	if err := VerifySignature(body, sign("secret", body), "secret"); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
	// Byte-identical resubmission verifies again.
	if err := VerifySignature(body, sign("secret", body), "secret"); err != nil {
		t.Fatalf("resubmission rejected: %v", err)
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	body := []byte(`{"from":"x"}`)
	err := VerifySignature(body, sign("other-secret", body), "secret")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifySignatureMissing(t *testing.T) {
	err := VerifySignature([]byte("{}"), "", "secret")
	if !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
}

func TestVerifySignatureBodyMutation(t *testing.T) {
	body := []byte(`{"from":"6285890392419@s.whatsapp.net"}`)
	sig := sign("secret", body)

	// Any single-bit mutation of the body must fail verification.
	for i := range body {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		if err := VerifySignature(mutated, sig, "secret"); !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("mutation at byte %d accepted", i)
		}
	}
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	body := []byte("{}")
	for _, sig := range []string{"sha256=", "sha256=zz", "md5=abc", "garbage"} {
		if err := VerifySignature(body, sig, "secret"); !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("header %q: expected ErrInvalidSignature, got %v", sig, err)
		}
	}
}
