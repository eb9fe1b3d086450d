package aucpace

import "testing"

func TestPseudoVerifierDeterministicPerSsidAndUsername(t *testing.T) {
	hiding := newPseudoVerifierHiding([]byte("server-secret-seed"))
	ssid := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	w1, salt1, err := hiding.pseudoVerifier(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	w2, salt2, err := hiding.pseudoVerifier(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	if string(w1.Encode()) != string(w2.Encode()) {
		t.Fatal("pseudo-verifier must be deterministic for the same (seed, ssid, username)")
	}
	if salt1.String() != salt2.String() {
		t.Fatal("pseudo-salt must be deterministic for the same (seed, ssid, username)")
	}
}

func TestPseudoVerifierDiffersAcrossUsernames(t *testing.T) {
	hiding := newPseudoVerifierHiding([]byte("server-secret-seed"))
	ssid := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	wAlice, _, err := hiding.pseudoVerifier(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	wBob, _, err := hiding.pseudoVerifier(ssid, []byte("bob"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	if string(wAlice.Encode()) == string(wBob.Encode()) {
		t.Fatal("distinct usernames must yield distinct pseudo-verifiers")
	}
}

func TestPseudoVerifierDiffersAcrossServerSeeds(t *testing.T) {
	ssid := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	h1 := newPseudoVerifierHiding([]byte("seed-one"))
	h2 := newPseudoVerifierHiding([]byte("seed-two"))

	w1, _, err := h1.pseudoVerifier(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	w2, _, err := h2.pseudoVerifier(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoVerifier: %v", err)
	}
	if string(w1.Encode()) == string(w2.Encode()) {
		t.Fatal("distinct server secret seeds must yield distinct pseudo-verifiers")
	}
}

func TestPseudoExponentNeverZero(t *testing.T) {
	hiding := newPseudoVerifierHiding([]byte("server-secret-seed"))
	ssid := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	q, err := hiding.pseudoExponent(ssid, []byte("alice"))
	if err != nil {
		t.Fatalf("pseudoExponent: %v", err)
	}
	if q.IsZero() {
		t.Fatal("pseudo-exponent must never be the zero scalar")
	}
}
