package group

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func randomWide(t *testing.T) []byte {
	t.Helper()
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return b
}

func TestScalarMultBaseRoundTrip(t *testing.T) {
	s, err := ScalarFromUniformWideBytes(randomWide(t))
	if err != nil {
		t.Fatalf("ScalarFromUniformWideBytes: %v", err)
	}
	p := ScalarMultBase(s)
	if p.IsIdentity() {
		t.Fatal("scalar*G should not be the identity for a fresh random scalar")
	}
	decoded, err := DecodePoint(p.Encode())
	if err != nil {
		t.Fatalf("DecodePoint: %v", err)
	}
	if !bytes.Equal(decoded.Encode(), p.Encode()) {
		t.Fatal("round-trip encode/decode changed the point")
	}
}

func TestDecodePointRejectsIdentity(t *testing.T) {
	zero := make([]byte, PointSize)
	if _, err := DecodePoint(zero); err != ErrIllegalPoint {
		t.Fatalf("expected ErrIllegalPoint for identity encoding, got %v", err)
	}
}

func TestScalarFromPasswordHashLengths(t *testing.T) {
	if _, err := ScalarFromPasswordHash(nil); err != ErrHashEmpty {
		t.Fatalf("expected ErrHashEmpty, got %v", err)
	}
	if _, err := ScalarFromPasswordHash(make([]byte, 31)); err != ErrHashSizeInvalid {
		t.Fatalf("expected ErrHashSizeInvalid for 31 bytes, got %v", err)
	}
	if _, err := ScalarFromPasswordHash(make([]byte, 33)); err != ErrHashSizeInvalid {
		t.Fatalf("expected ErrHashSizeInvalid for 33 bytes, got %v", err)
	}
	if _, err := ScalarFromPasswordHash(make([]byte, 65)); err != ErrHashSizeInvalid {
		t.Fatalf("expected ErrHashSizeInvalid for 65 bytes, got %v", err)
	}
	if _, err := ScalarFromPasswordHash(make([]byte, 32)); err != nil {
		t.Fatalf("expected 32-byte hash to be accepted, got %v", err)
	}
	if _, err := ScalarFromPasswordHash(make([]byte, 64)); err != nil {
		t.Fatalf("expected 64-byte hash to be accepted, got %v", err)
	}
}

func TestHashToGroupDeterministic(t *testing.T) {
	input := bytes.Repeat([]byte{0x42}, 64)
	p1, err := HashToGroup(input)
	if err != nil {
		t.Fatalf("HashToGroup: %v", err)
	}
	p2, err := HashToGroup(input)
	if err != nil {
		t.Fatalf("HashToGroup: %v", err)
	}
	if !bytes.Equal(p1.Encode(), p2.Encode()) {
		t.Fatal("HashToGroup must be a deterministic function of its input")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	r, err := ScalarFromUniformWideBytes(randomWide(t))
	if err != nil {
		t.Fatalf("ScalarFromUniformWideBytes: %v", err)
	}
	base := ScalarMultBase(One())
	blinded := ScalarMult(r, base)
	rInv := Invert(r)
	unblinded := ScalarMult(rInv, blinded)
	if !bytes.Equal(unblinded.Encode(), base.Encode()) {
		t.Fatal("r^-1 * (r * P) should equal P")
	}
}
