package aucpace

import "errors"

// fixedRNG yields a fixed byte, useful for deterministic fixtures that
// don't care about the specific scalar/nonce value, only that it is
// well-formed.
type fixedRNG struct{ b byte }

func (f fixedRNG) TryFillBytes(buf []byte) error {
	for i := range buf {
		buf[i] = f.b
	}
	return nil
}

// sequenceRNG cycles through a fixed sequence of fill bytes across
// successive calls, so a test can give the server and client distinct
// (but still deterministic) ephemeral material.
type sequenceRNG struct {
	calls int
}

func (s *sequenceRNG) TryFillBytes(buf []byte) error {
	s.calls++
	for i := range buf {
		buf[i] = byte(s.calls*7 + i)
	}
	return nil
}

// failingRNG always reports a CSPRNG failure, exercising the
// ErrRng / retryable-state behavior (spec §5, §8 property 6).
type failingRNG struct{}

var errFakeRNGFailure = errors.New("testhelpers: simulated rng failure")

func (failingRNG) TryFillBytes(buf []byte) error {
	return errFakeRNGFailure
}

// toggleRNG fails its first N calls, then fills deterministically from
// fixedRNG-style repetition of b. Used to confirm a CSPRNG failure
// leaves a state handle retryable: the same handle is called again
// after the RNG recovers.
type toggleRNG struct {
	failCalls int
	calls     int
	b         byte
}

func (t *toggleRNG) TryFillBytes(buf []byte) error {
	t.calls++
	if t.calls <= t.failCalls {
		return errFakeRNGFailure
	}
	for i := range buf {
		buf[i] = t.b
	}
	return nil
}
