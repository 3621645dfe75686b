package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	body := []byte(`{"email":"x@y.com"}`)
	secret := "s"

	if !Verify(body, sign(body, secret), secret) {
		t.Error("valid signature rejected")
	}
}

func TestVerifyRejectsMutations(t *testing.T) {
	body := []byte(`{"email":"x@y.com"}`)
	secret := "webhook-secret"
	valid := sign(body, secret)

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
	}{
		{"mutated body", []byte(`{"email":"x@z.com"}`), valid, secret},
		{"mutated secret", body, valid, "webhook-secret2"},
		{"flipped signature char", body, flipFirstChar(valid), secret},
		{"truncated signature", body, valid[:len(valid)-1], secret},
		{"garbage signature", body, "not-a-signature", secret},
		{"signature for other body", body, sign([]byte(`{}`), secret), secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(tt.body, tt.signature, tt.secret) {
				t.Error("forged signature accepted")
			}
		})
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	body := []byte(`{"email":"x@y.com"}`)

	if Verify(body, sign(body, "s"), "") {
		t.Error("empty secret accepted")
	}
	if Verify(body, "", "s") {
		t.Error("empty signature accepted")
	}
	if Verify(body, "", "") {
		t.Error("empty secret and signature accepted")
	}
}

func TestSignMatchesVerify(t *testing.T) {
	body := []byte("payload")
	if !Verify(body, Sign(body, "k"), "k") {
		t.Error("Sign output not accepted by Verify")
	}
}

func flipFirstChar(s string) string {
	b := []byte(s)
	if b[0] == 'A' {
		b[0] = 'B'
	} else {
		b[0] = 'A'
	}
	return string(b)
}
