package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes and verifies the HMAC-SHA256 signature carried in
// ticket payloads. It is stateless apart from the key and safe for
// concurrent use.
type Signer struct {
	key []byte
}

func NewSigner(key string) *Signer {
	return &Signer{key: []byte(key)}
}

// Sign returns the hex-encoded HMAC-SHA256 of the ticket id.
func (s *Signer) Sign(ticketID string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(ticketID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature and compares in constant time.
// Malformed input is simply not valid; it never errors.
func (s *Signer) Verify(ticketID, sig string) bool {
	if ticketID == "" || sig == "" {
		return false
	}
	return hmac.Equal([]byte(s.Sign(ticketID)), []byte(sig))
}
