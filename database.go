package aucpace

import (
	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// PasswordVerifier is the Ristretto255 point W = w*G a server stores
// in place of a password (spec §3).
type PasswordVerifier = *group.Point

// Exponent is the scalar q a strong-augmentation server stores per
// user as its OPRF key (spec §3).
type Exponent = *group.Scalar

// Database is the standard-augmentation verifier store (spec §6).
// Implementations are supplied by the caller; the core never persists
// anything itself.
type Database interface {
	// LookupVerifier returns the stored verifier, salt and KDF params
	// for username, or ok == false if no such user exists. Returning
	// ok == false must be the only way to signal "not found" - it must
	// not be distinguishable, from the rest of the server flow's
	// perspective, from any other failure.
	LookupVerifier(username []byte) (verifier PasswordVerifier, salt phc.SaltString, params phc.ParamsString, ok bool)

	// StoreVerifier persists a newly registered user's verifier, salt,
	// optional user-associated data, and KDF params.
	StoreVerifier(username []byte, salt phc.SaltString, uad []byte, verifier PasswordVerifier, params phc.ParamsString)
}

// StrongDatabase is the strong (OPRF) augmentation verifier store
// (spec §4.5, §6).
type StrongDatabase interface {
	// LookupVerifierStrong returns the stored verifier, OPRF secret
	// exponent and KDF params for username, or ok == false if no such
	// user exists.
	LookupVerifierStrong(username []byte) (verifier PasswordVerifier, exponent Exponent, params phc.ParamsString, ok bool)

	// StoreVerifierStrong persists a newly registered user's verifier,
	// optional user-associated data, OPRF secret exponent, and KDF
	// params.
	StoreVerifierStrong(username []byte, uad []byte, verifier PasswordVerifier, exponent Exponent, params phc.ParamsString)
}
