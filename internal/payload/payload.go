// Package payload encodes the pair (ticket id, signature) into the opaque
// string embedded in a QR code and decodes scanned values back.
package payload

import (
	"errors"
	"strings"
)

// Delimiter separates ticket id and signature. Both sides are uuid/hex
// alphabets, so '|' can never occur inside either value.
const Delimiter = "|"

var ErrMalformed = errors.New("malformed payload")

// Scanned is the decoded form of a presented payload. Exactly one shape
// applies: a signed pair (TicketID + Signature), or a bare redemption
// token whose authenticity is established by server-side lookup.
type Scanned struct {
	TicketID  string
	Signature string
	Token     string
}

// Signed reports whether the scan carries an explicit signature.
func (s Scanned) Signed() bool {
	return s.Signature != ""
}

// Encode joins a ticket id and its signature into a payload string.
func Encode(ticketID, sig string) string {
	return ticketID + Delimiter + sig
}

// Decode parses a scanned value. A payload containing the delimiter is
// split on its first occurrence into id and signature; anything else is
// treated as a bare token. Empty parts are malformed.
func Decode(raw string) (Scanned, error) {
	if raw == "" {
		return Scanned{}, ErrMalformed
	}

	if id, sig, ok := strings.Cut(raw, Delimiter); ok {
		if id == "" || sig == "" {
			return Scanned{}, ErrMalformed
		}
		return Scanned{TicketID: id, Signature: sig}, nil
	}

	return Scanned{Token: raw}, nil
}
