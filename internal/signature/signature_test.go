package signature

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret")

	id := uuid.NewString()
	sig := s.Sign(id)

	assert.Len(t, sig, 64) // hex sha256
	assert.True(t, s.Verify(id, sig))
}

func TestSign_Deterministic(t *testing.T) {
	s := NewSigner("test-secret")

	assert.Equal(t, s.Sign("abc"), s.Sign("abc"))
	assert.NotEqual(t, s.Sign("abc"), s.Sign("abd"))
}

func TestVerify_WrongTicket(t *testing.T) {
	s := NewSigner("test-secret")

	sig := s.Sign(uuid.NewString())
	assert.False(t, s.Verify(uuid.NewString(), sig))
}

func TestVerify_DifferentKeys(t *testing.T) {
	a := NewSigner("key-a")
	b := NewSigner("key-b")

	id := uuid.NewString()
	assert.NotEqual(t, a.Sign(id), b.Sign(id))
	assert.False(t, b.Verify(id, a.Sign(id)))
}

func TestVerify_TamperedSignature(t *testing.T) {
	s := NewSigner("test-secret")

	id := uuid.NewString()
	sig := s.Sign(id)
	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	assert.False(t, s.Verify(id, string(tampered)))
}

func TestVerify_MalformedInput(t *testing.T) {
	s := NewSigner("test-secret")

	assert.False(t, s.Verify("", s.Sign("x")))
	assert.False(t, s.Verify("x", ""))
	assert.False(t, s.Verify("x", "not-hex-at-all"))
}
