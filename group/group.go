// Package group wraps the Ristretto255 prime-order group for use by the
// AuCPace state machines. It is the only package that imports
// github.com/gtank/ristretto255 directly; everything above this layer
// works with the Scalar and Point wrappers defined here.
package group

import (
	"crypto/subtle"
	"errors"

	ristretto "github.com/gtank/ristretto255"
)

// ScalarSize and PointSize are the canonical encoding lengths for
// Ristretto255 scalars and group elements.
const (
	ScalarSize = 32
	PointSize  = 32
)

// ErrHashEmpty is returned when scalar_from_password_hash is given an
// empty hash byte field.
var ErrHashEmpty = errors.New("group: password hash is empty")

// ErrHashSizeInvalid is returned when the password hash byte field is
// neither 32 nor 64 bytes long.
var ErrHashSizeInvalid = errors.New("group: password hash length must be 32 or 64 bytes")

// ErrIllegalPoint is returned when a received point encoding is invalid
// or decodes to the group identity.
var ErrIllegalPoint = errors.New("group: point is invalid or the group identity")

// Scalar is an integer modulo the Ristretto255 group order.
type Scalar struct {
	s *ristretto.Scalar
}

// Point is a Ristretto255 group element.
type Point struct {
	p *ristretto.Element
}

// BasePoint returns the canonical Ristretto255 generator G.
func BasePoint() *Point {
	return &Point{p: new(ristretto.Element).Base()}
}

// ScalarFromUniformWideBytes performs wide reduction of a uniformly
// random 64-byte input into a scalar. This is the same operation the
// teacher package uses in randomScalar: 64 fresh CSPRNG bytes reduced
// mod the group order.
func ScalarFromUniformWideBytes(b []byte) (*Scalar, error) {
	if len(b) != 64 {
		return nil, errors.New("group: wide reduction requires exactly 64 bytes")
	}
	s := new(ristretto.Scalar).FromUniformBytes(b)
	return &Scalar{s: s}, nil
}

// ScalarFromPasswordHash implements scalar_from_password_hash (spec
// §4.2): a PHC hash byte field of length 32 is reduced mod the group
// order by zero-padding to 64 bytes and performing the library's one
// documented wide-reduction primitive (padding the top 32 bytes of a
// little-endian 512-bit integer with zero is the same operation as
// reducing the low 32 bytes mod the order). A 64-byte field is reduced
// directly. Any other length, or an empty field, is an error.
func ScalarFromPasswordHash(hash []byte) (*Scalar, error) {
	switch len(hash) {
	case 0:
		return nil, ErrHashEmpty
	case 32:
		wide := make([]byte, 64)
		copy(wide, hash)
		return ScalarFromUniformWideBytes(wide)
	case 64:
		return ScalarFromUniformWideBytes(hash)
	default:
		return nil, ErrHashSizeInvalid
	}
}

// HashToGroup maps 64 bytes of uniform hash output (e.g. the output of
// H1) to a non-identity group element via the library's constant-time
// Elligator2-based FromUniformBytes map, the same primitive the teacher
// package uses in oprfA/oprfB to build H'(x).
func HashToGroup(uniform []byte) (*Point, error) {
	if len(uniform) != 64 {
		return nil, errors.New("group: hash-to-group requires 64 bytes of uniform input")
	}
	p := new(ristretto.Element).FromUniformBytes(uniform)
	pt := &Point{p: p}
	if pt.IsIdentity() {
		// Astronomically unlikely for a real hash output; guarded for
		// the invariant that a password-bound generator is never the
		// identity.
		return nil, ErrIllegalPoint
	}
	return pt, nil
}

// ScalarMultBase computes s*G.
func ScalarMultBase(s *Scalar) *Point {
	return &Point{p: new(ristretto.Element).ScalarBaseMult(s.s)}
}

// ScalarMult computes s*P.
func ScalarMult(s *Scalar, p *Point) *Point {
	return &Point{p: new(ristretto.Element).ScalarMult(s.s, p.p)}
}

// Invert returns s^-1 mod the group order.
func Invert(s *Scalar) *Scalar {
	return &Scalar{s: new(ristretto.Scalar).Invert(s.s)}
}

// IsZero reports whether s is the zero scalar, in constant time.
func (s *Scalar) IsZero() bool {
	zero := new(ristretto.Scalar).Zero()
	return subtle.ConstantTimeCompare(s.s.Encode(nil), zero.Encode(nil)) == 1
}

// One returns the multiplicative identity scalar.
func One() *Scalar {
	return &Scalar{s: new(ristretto.Scalar).One()}
}

// Encode returns the canonical 32-byte encoding of s.
func (s *Scalar) Encode() []byte {
	return s.s.Encode(nil)
}

// DecodeScalar parses a canonical 32-byte scalar encoding.
func DecodeScalar(b []byte) (*Scalar, error) {
	s := new(ristretto.Scalar)
	if err := s.Decode(b); err != nil {
		return nil, err
	}
	return &Scalar{s: s}, nil
}

// Zeroize overwrites the scalar's internal representation with zero.
// Go's ristretto255.Scalar has no exported mutable byte buffer, so this
// replaces the wrapped value with the zero scalar; any prior secret
// value becomes unreachable once the old *Scalar is dropped by its
// owner. Callers that need a hard zeroize guarantee should keep secret
// scalar bytes in a secret.Bytes and derive ristretto scalars
// from it on demand rather than retaining the wrapper long-term.
func (s *Scalar) Zeroize() {
	s.s = new(ristretto.Scalar).Zero()
}

// Encode returns the canonical 32-byte compressed encoding of p.
func (p *Point) Encode() []byte {
	return p.p.Encode(nil)
}

// DecodePoint parses a canonical 32-byte point encoding and rejects the
// group identity, per spec §3's "every received Point is checked for
// identity and rejected if equal" invariant.
func DecodePoint(b []byte) (*Point, error) {
	if len(b) != PointSize {
		return nil, ErrIllegalPoint
	}
	p := new(ristretto.Element)
	if err := p.Decode(b); err != nil {
		return nil, ErrIllegalPoint
	}
	pt := &Point{p: p}
	if pt.IsIdentity() {
		return nil, ErrIllegalPoint
	}
	return pt, nil
}

// IsIdentity reports, in constant time, whether p is the group identity.
// Ristretto255's identity element compresses to 32 zero bytes, so this
// avoids depending on any identity-comparison method the wrapped
// library may or may not expose.
func (p *Point) IsIdentity() bool {
	zero := make([]byte, PointSize)
	return subtle.ConstantTimeCompare(p.p.Encode(nil), zero) == 1
}

// Zeroize overwrites the point's internal representation with the
// identity element. See the comment on Scalar.Zeroize for the caveat
// about long-term retention of the wrapper.
func (p *Point) Zeroize() {
	p.p = new(ristretto.Element).Zero()
}
