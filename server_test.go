package aucpace

import (
	"testing"

	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/memdb"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

const testSSID = "0123456789abcdef"

func TestServerBeginFreshSSIDThenReuseFails(t *testing.T) {
	srv := NewServer(fixedRNG{0x01}, []byte("server-secret-seed"))
	next, msg, err := srv.BeginFreshSSID()
	if err != nil {
		t.Fatalf("BeginFreshSSID: %v", err)
	}
	if next == nil {
		t.Fatal("expected non-nil next state")
	}
	if msg.S == ([NonceLen]byte{}) {
		t.Fatal("expected non-zero nonce")
	}
	if _, _, err := srv.BeginFreshSSID(); err != ErrOutOfSequence {
		t.Fatalf("expected ErrOutOfSequence on reuse, got %v", err)
	}
}

func TestServerBeginFreshSSIDRngFailureLeavesStateRetryable(t *testing.T) {
	rng := &toggleRNG{failCalls: 1, b: 0x02}
	srv := NewServer(rng, []byte("seed"))

	if _, _, err := srv.BeginFreshSSID(); err != ErrRng {
		t.Fatalf("expected ErrRng on first (failing) attempt, got %v", err)
	}
	next, _, err := srv.BeginFreshSSID()
	if err != nil {
		t.Fatalf("expected retry to succeed once the rng recovers, got %v", err)
	}
	if next == nil {
		t.Fatal("expected non-nil next state on retry")
	}
}

func TestServerBeginPrestablishedSSIDRejectsShortInput(t *testing.T) {
	srv := NewServer(fixedRNG{0x01}, []byte("seed"))
	if _, err := srv.BeginPrestablishedSSID([]byte("short")); err != ErrInsufficientSsidLength {
		t.Fatalf("expected ErrInsufficientSsidLength, got %v", err)
	}
	// The failed attempt must not have consumed the state.
	est, err := srv.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("expected retry with valid bytes to succeed, got %v", err)
	}
	if len(est.SSID()) != HashOutputLen {
		t.Fatalf("expected %d-byte SSID, got %d", HashOutputLen, len(est.SSID()))
	}
}

// Property 7: a pre-established SSID is a pure function of the input
// bytes - two independent servers fed the same bytes must agree.
func TestServerBeginPrestablishedSSIDIsPureFunctionOfInput(t *testing.T) {
	srv1 := NewServer(fixedRNG{0x01}, []byte("seed-a"))
	srv2 := NewServer(fixedRNG{0x02}, []byte("seed-b"))

	est1, err := srv1.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("srv1 BeginPrestablishedSSID: %v", err)
	}
	est2, err := srv2.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("srv2 BeginPrestablishedSSID: %v", err)
	}
	if string(est1.SSID()) != string(est2.SSID()) {
		t.Fatal("expected SSID to depend only on the input bytes, not on server-secret seed or rng")
	}

	srv3 := NewServer(fixedRNG{0x03}, []byte("seed-c"))
	est3, err := srv3.BeginPrestablishedSSID([]byte("fedcba9876543210"))
	if err != nil {
		t.Fatalf("srv3 BeginPrestablishedSSID: %v", err)
	}
	if string(est1.SSID()) == string(est3.SSID()) {
		t.Fatal("expected different input bytes to yield a different SSID")
	}
}

func TestServerOutOfSequenceAcrossStates(t *testing.T) {
	srv := NewServer(fixedRNG{0x01}, []byte("seed"))
	est, err := srv.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("BeginPrestablishedSSID: %v", err)
	}
	db := memdb.NewInMemoryDatabase()
	if _, _, err := est.GenerateClientInfo([]byte("nobody"), db, []byte("ci")); err != nil {
		t.Fatalf("GenerateClientInfo: %v", err)
	}
	if _, _, err := est.GenerateClientInfo([]byte("nobody"), db, []byte("ci")); err != ErrOutOfSequence {
		t.Fatalf("expected ErrOutOfSequence on reuse, got %v", err)
	}
}

func TestServerReceiveClientPubRejectsIdentityPoint(t *testing.T) {
	srv := NewServer(fixedRNG{0x01}, []byte("seed"))
	est, err := srv.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("BeginPrestablishedSSID: %v", err)
	}
	db := memdb.NewInMemoryDatabase()
	aug, _, err := est.GenerateClientInfo([]byte("nobody"), db, []byte("ci"))
	if err != nil {
		t.Fatalf("GenerateClientInfo: %v", err)
	}

	var identityMsg ClientPubMsg // zero value encodes the Ristretto255 identity
	if _, _, err := aug.ReceiveClientPub(identityMsg); err != ErrIllegalPoint {
		t.Fatalf("expected ErrIllegalPoint, got %v", err)
	}

	// The rejected attempt must not have consumed the ServerAugmented
	// state: a well-formed Y should still be accepted afterward.
	validY := group.ScalarMultBase(group.One())
	var goodMsg ClientPubMsg
	copy(goodMsg.YPub[:], validY.Encode())
	if _, _, err := aug.ReceiveClientPub(goodMsg); err != nil {
		t.Fatalf("expected retry with a legitimate Y to succeed, got %v", err)
	}
}

func TestServerLookupFailedReturnsDefaultParams(t *testing.T) {
	srv := NewServer(fixedRNG{0x03}, []byte("seed"))
	est, err := srv.BeginPrestablishedSSID([]byte(testSSID))
	if err != nil {
		t.Fatalf("BeginPrestablishedSSID: %v", err)
	}
	db := memdb.NewInMemoryDatabase() // no users registered
	_, msg, err := est.GenerateClientInfo([]byte("ghost"), db, []byte("ci"))
	if err != nil {
		t.Fatalf("GenerateClientInfo on lookup_failed path: %v", err)
	}
	if msg.Group != GroupName {
		t.Fatalf("expected group %q, got %q", GroupName, msg.Group)
	}
	if !msg.PbkdfParams.Equal(phc.DefaultParamsString()) {
		t.Fatalf("expected default params on lookup_failed path, got %q", msg.PbkdfParams.String())
	}
	if msg.Salt.IsZero() {
		t.Fatal("expected a non-empty pseudo-salt on lookup_failed path")
	}
}

func TestServerLookupFailedIsDeterministicPerUsername(t *testing.T) {
	seed := []byte("server-secret-seed")
	srv1 := NewServer(fixedRNG{0x04}, seed)
	est1, _ := srv1.BeginPrestablishedSSID([]byte(testSSID))
	db := memdb.NewInMemoryDatabase()
	_, msg1, err := est1.GenerateClientInfo([]byte("ghost"), db, []byte("ci"))
	if err != nil {
		t.Fatalf("GenerateClientInfo: %v", err)
	}

	srv2 := NewServer(fixedRNG{0x04}, seed)
	est2, _ := srv2.BeginPrestablishedSSID([]byte(testSSID))
	_, msg2, err := est2.GenerateClientInfo([]byte("ghost"), db, []byte("ci"))
	if err != nil {
		t.Fatalf("GenerateClientInfo: %v", err)
	}

	if msg1.Salt.String() != msg2.Salt.String() {
		t.Fatal("pseudo-salt must be deterministic for the same (seed, ssid, username)")
	}
}
