package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw webhook body
const SignatureHeader = "X-Webhook-Signature"

// SignPayload returns the lowercase hex HMAC-SHA256 of body under secret
func SignPayload(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the HMAC of the exact raw body.
// An empty secret or signature never verifies. The comparison is constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := SignPayload(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
