// Package secret provides zeroizing byte-buffer wrappers for the
// AuCPace core. Go has no destructors, so "zeroize on drop" becomes an
// explicit Destroy call made by the owner of a wrapper. The state
// machines in the parent package do not call Destroy: at the
// authenticator check they zeroize sk1 (and, on a mismatch, the
// expected tag) with their own helper, and the session Key returned
// by IntoSessionKey is left for the caller to Destroy. Other
// ephemeral material they hold (scalars, PRS, the strong variant's
// password copy) is not zeroized.
//
// Grounded in original_source/secret-utils/src/lib.rs's SecretBytes and
// SecretKey (expose/into_inner/Zeroize) and in the teacher package's
// own manual clear(x []byte) helper in crypto.go.
package secret

// Bytes is an owned, zeroizing byte buffer for secret material such as
// passwords, PRS values, and ephemeral scalar encodings.
type Bytes struct {
	b []byte
}

// NewBytes takes ownership of b and wraps it. Callers must not retain
// their own reference to b afterward.
func NewBytes(b []byte) *Bytes {
	return &Bytes{b: b}
}

// Expose returns a read-only borrow of the wrapped bytes. Prefer this
// over IntoInner whenever the caller does not need ownership.
func (s *Bytes) Expose() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Len returns the length of the wrapped buffer.
func (s *Bytes) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b)
}

// IntoInner consumes s and returns the wrapped buffer, transferring
// ownership of the secret data to the caller. This is an explicit
// opt-out of the zeroizing guarantee: once returned, the caller alone
// is responsible for the bytes' lifetime.
func (s *Bytes) IntoInner() []byte {
	out := s.b
	s.b = nil
	return out
}

// Destroy zeroizes the wrapped buffer in place. Safe to call more than
// once and on a nil receiver.
func (s *Bytes) Destroy() {
	if s == nil {
		return
	}
	for i := range s.b {
		s.b[i] = 0
	}
	s.b = nil
}

// String renders a redacted diagnostic form; it never includes the
// secret bytes.
func (s *Bytes) String() string {
	if s == nil {
		return "[redacted], len=0"
	}
	return "[redacted], len=" + itoa(len(s.b))
}

// Key is a zeroizing wrapper for derived key material (session keys,
// authenticator tags) that additionally supports a length-independent
// constant-time equality check, used for authenticator and
// session-key comparisons per spec §4.6/§8 property 4.
type Key struct {
	b []byte
}

// NewKey takes ownership of b and wraps it.
func NewKey(b []byte) *Key {
	return &Key{b: b}
}

// Expose returns a read-only borrow of the wrapped key bytes.
func (k *Key) Expose() []byte {
	if k == nil {
		return nil
	}
	return k.b
}

// Len returns the length of the wrapped key.
func (k *Key) Len() int {
	if k == nil {
		return 0
	}
	return len(k.b)
}

// IntoInner consumes k and returns the wrapped buffer. See Bytes.IntoInner.
func (k *Key) IntoInner() []byte {
	out := k.b
	k.b = nil
	return out
}

// Destroy zeroizes the wrapped key in place. Safe to call more than
// once and on a nil receiver.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	for i := range k.b {
		k.b[i] = 0
	}
	k.b = nil
}

// String renders a redacted diagnostic form; it never includes the key.
func (k *Key) String() string {
	if k == nil {
		return "[redacted], len=0"
	}
	return "[redacted], len=" + itoa(len(k.b))
}

// ConstantTimeEqual compares two Keys for equality without leaking
// timing information about where (or whether) they differ, including
// when they differ in length. It folds the length difference into the
// accumulator and scans max(len(a), len(b)) bytes without an early
// return, so runtime does not depend on the index of a differing bit.
func (k *Key) ConstantTimeEqual(other *Key) bool {
	var a, b []byte
	if k != nil {
		a = k.b
	}
	if other != nil {
		b = other.b
	}
	return ConstantTimeEqualBytes(a, b)
}

// ConstantTimeEqualBytes performs the same length-independent
// constant-time comparison as Key.ConstantTimeEqual over plain byte
// slices, for callers comparing authenticator tags that are not
// already wrapped in a Key (e.g. a freshly received Tb' before it is
// known to be valid).
func ConstantTimeEqualBytes(a, b []byte) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	// lenDiff folds the length mismatch into the running comparison so
	// that unequal-length inputs are never reported equal, without
	// branching on the lengths.
	lenDiff := len(a) ^ len(b)
	var acc int
	for i := 0; i < n; i++ {
		var av, bv byte
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		acc |= int(av ^ bv)
	}
	acc |= lenDiff
	return acc == 0
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
