package aucpace

import (
	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// GenerateClientInfoStrong processes a client's OPRF-blinded salt
// request B for the strong augmentation variant (spec §4.5). The
// server stores, per user, (W, q, params); it verifies B is
// non-identity, computes blinded_salt = q*B, and returns it alongside
// its ephemeral CPace public key.
//
// On a lookup_failed path, a deterministic pseudo-exponent q' is
// derived from (SSID, username) and the server secret seed, exactly
// as the standard variant derives a pseudo-verifier; blinded_salt =
// q'*B can never be the identity, since B is already verified
// non-identity and q' is non-zero by construction.
func (s *ServerSsidEstablished) GenerateClientInfoStrong(username []byte, msg ClientBlindedSaltMsg, db StrongDatabase, ci []byte) (*ServerAugmented, StrongAugmentationInfoMsg, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, StrongAugmentationInfoMsg{}, err
	}

	b, err := group.DecodePoint(msg.B[:])
	if err != nil {
		return nil, StrongAugmentationInfoMsg{}, ErrIllegalPoint
	}

	var w PasswordVerifier
	var q Exponent
	params := phc.DefaultParamsString()

	if verifier, exponent, dbParams, ok := db.LookupVerifierStrong(username); ok {
		w, q, params = verifier, exponent, dbParams
	} else {
		pseudoQ, err := s.hiding.pseudoExponent(s.ssid, username)
		if err != nil {
			return nil, StrongAugmentationInfoMsg{}, err
		}
		pseudoW, _, err := s.hiding.pseudoVerifier(s.ssid, username)
		if err != nil {
			return nil, StrongAugmentationInfoMsg{}, err
		}
		w, q = pseudoW, pseudoQ
	}

	blindedSalt := group.ScalarMult(q, b)

	prs := w.Encode()
	x, X, _, err := generateEphemeralKeypair(s.rng, s.hf, s.ssid, prs, ci)
	if err != nil {
		return nil, StrongAugmentationInfoMsg{}, err
	}
	s.consumed = true

	out := StrongAugmentationInfoMsg{Group: GroupName, PbkdfParams: params}
	copy(out.XPub[:], X.Encode())
	copy(out.BlindedSalt[:], blindedSalt.Encode())

	next := &ServerAugmented{
		ssid: s.ssid, rng: s.rng, hf: s.hf,
		x: x, prs: prs, ci: append([]byte(nil), ci...),
	}
	return next, out, nil
}
