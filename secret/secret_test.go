package secret

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestBytesIntoInnerRoundTrip(t *testing.T) {
	v := []byte("this is a test password")
	cp := append([]byte(nil), v...)
	sb := NewBytes(cp)
	out := sb.IntoInner()
	if string(out) != string(v) {
		t.Fatalf("IntoInner round-trip mismatch: got %q want %q", out, v)
	}
}

func TestBytesDestroyZeroizes(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	sb := NewBytes(buf)
	sb.Destroy()
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected byte %d to be zeroized after Destroy, got %d", i, v)
		}
	}
	if sb.Len() != 0 {
		t.Fatalf("expected Len()==0 after Destroy, got %d", sb.Len())
	}
	// Safe to call twice and on effectively-empty state.
	sb.Destroy()
}

func TestBytesRedactedString(t *testing.T) {
	sb := NewBytes([]byte("hunter2"))
	s := sb.String()
	if s != "[redacted], len=7" {
		t.Fatalf("unexpected redacted string: %q", s)
	}
}

func TestKeyConstantTimeEqual(t *testing.T) {
	a := NewKey([]byte{1, 2, 3, 4})
	b := NewKey([]byte{1, 2, 3, 4})
	if !a.ConstantTimeEqual(b) {
		t.Fatal("expected equal keys to compare equal")
	}
	c := NewKey([]byte{1, 2, 3, 5})
	if a.ConstantTimeEqual(c) {
		t.Fatal("expected single-byte difference to compare unequal")
	}
	d := NewKey([]byte{1, 2, 3})
	if a.ConstantTimeEqual(d) {
		t.Fatal("expected different-length keys to compare unequal")
	}
}

func TestConstantTimeEqualBytesAllBitPositions(t *testing.T) {
	base := make([]byte, 64)
	for i := range base {
		base[i] = byte(i)
	}
	if !ConstantTimeEqualBytes(base, append([]byte(nil), base...)) {
		t.Fatal("identical slices must compare equal")
	}
	for i := 0; i < len(base); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), base...)
			mutated[i] ^= 1 << uint(bit)
			if ConstantTimeEqualBytes(base, mutated) {
				t.Fatalf("flipped bit %d of byte %d should compare unequal", bit, i)
			}
		}
	}
}

// timingAnalysis is a best-effort empirical cross-check that two
// closures run in statistically indistinguishable time, in the same
// spirit as the teacher package's own timingAnalysis/TestRistrettoTiming
// in crypto_test.go. It is not a substitute for the static-inspection
// argument (ConstantTimeEqualBytes has no early return and folds the
// length difference into the accumulator); timing measurements on a
// shared CI machine are inherently noisy, so this only logs its
// findings rather than failing the build on a borderline delta.
func timingAnalysis(a func(), b func(), n int) error {
	type timingData struct {
		a []time.Duration
		b []time.Duration
	}
	td := timingData{}
	for i := 0; i < n; i++ {
		s := time.Now()
		a()
		td.a = append(td.a, time.Since(s))
		s = time.Now()
		b()
		td.b = append(td.b, time.Since(s))
	}
	var sumA, sumB time.Duration
	for i := range td.a {
		sumA += td.a[i]
		sumB += td.b[i]
	}
	sumA /= time.Duration(len(td.a))
	sumB /= time.Duration(len(td.b))

	var diff time.Duration
	if sumA > sumB {
		diff = sumA - sumB
	} else {
		diff = sumB - sumA
	}
	fmt.Printf("average runtime duration: matching: %v, mismatching: %v, delta %v\n", sumA, sumB, diff)
	if sumA+sumB == 0 {
		return errors.New("measured zero duration for both closures")
	}
	return nil
}

// TestConstantTimeEqualBytesTiming is the S5/property-4 statistical
// cross-check: comparing an all-matching run against an
// all-mismatching run over many trials should not reveal a
// reproducible timing signal. This is logged rather than asserted,
// since wall-clock timing on a shared machine is too noisy to gate a
// build on.
func TestConstantTimeEqualBytesTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("timing analysis is slow; skipped in -short mode")
	}
	matching := make([]byte, 64)
	mismatching := make([]byte, 64)
	for i := range mismatching {
		mismatching[i] = 0xFF
	}
	allZeroTb := make([]byte, 64)

	matchFn := func() { ConstantTimeEqualBytes(matching, allZeroTb) }
	mismatchFn := func() { ConstantTimeEqualBytes(mismatching, allZeroTb) }
	if err := timingAnalysis(matchFn, mismatchFn, 10000); err != nil {
		t.Fatalf("timing analysis sanity check failed: %v", err)
	}
}
