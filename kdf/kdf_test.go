package kdf

import (
	"testing"

	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

func TestArgon2idDeterministic(t *testing.T) {
	salt, err := phc.ParseSaltString("c29tZXNhbHR5c2FsdA")
	if err != nil {
		t.Fatalf("ParseSaltString: %v", err)
	}
	params := DefaultArgon2idParams().Encode()

	h1, err := Argon2id([]byte("correct horse"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id: %v", err)
	}
	h2, err := Argon2id([]byte("correct horse"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id: %v", err)
	}
	if string(h1) != string(h2) {
		t.Fatal("Argon2id must be a deterministic function of (password, salt, params)")
	}
	if len(h1) != 32 {
		t.Fatalf("expected 32-byte output, got %d", len(h1))
	}
}

func TestArgon2idDifferentPasswordsDiffer(t *testing.T) {
	salt, _ := phc.ParseSaltString("c29tZXNhbHR5c2FsdA")
	params := DefaultArgon2idParams().Encode()

	h1, err := Argon2id([]byte("correct horse"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id: %v", err)
	}
	h2, err := Argon2id([]byte("incorrect horse"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id: %v", err)
	}
	if string(h1) == string(h2) {
		t.Fatal("different passwords must not produce the same hash")
	}
}

func TestParamsStringEncodeMatchesS1Literal(t *testing.T) {
	p := DefaultArgon2idParams().Encode()
	if p.String() != "m=19456,t=2,p=1" {
		t.Fatalf("unexpected encoded params: %q", p.String())
	}
}
