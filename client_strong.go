package aucpace

import (
	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/kdf"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// BeginStrongAugmentation starts the strong (OPRF) augmentation
// variant: it blinds the password as B = r*hash_to_group(password)
// for a fresh scalar r and returns the message to send to the server
// (spec §4.5).
func (c *ClientSsidEstablished) BeginStrongAugmentation(password []byte) (*ClientStrongAwaitingSalt, ClientBlindedSaltMsg, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, ClientBlindedSaltMsg{}, err
	}

	hPrime, err := hashPasswordToGroup(c.hf, password)
	if err != nil {
		return nil, ClientBlindedSaltMsg{}, err
	}

	wide, err := generateWideScalarBytes(c.rng)
	if err != nil {
		return nil, ClientBlindedSaltMsg{}, err
	}
	r, err := group.ScalarFromUniformWideBytes(wide)
	if err != nil {
		return nil, ClientBlindedSaltMsg{}, err
	}
	c.consumed = true

	b := group.ScalarMult(r, hPrime)

	var msg ClientBlindedSaltMsg
	copy(msg.B[:], b.Encode())

	next := &ClientStrongAwaitingSalt{
		ssid: c.ssid, rng: c.rng, hf: c.hf,
		password: append([]byte(nil), password...),
		r:        r,
	}
	return next, msg, nil
}

// ClientStrongAwaitingSalt has sent its blinded salt request B and is
// awaiting the server's StrongAugmentationInfo.
type ClientStrongAwaitingSalt struct {
	ssid     []byte
	rng      CSPRNG
	hf       HashFunc
	password []byte
	r        *group.Scalar
	consumed bool
}

func (c *ClientStrongAwaitingSalt) checkNotConsumed() error {
	if c == nil || c.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveStrongAugmentationInfo unblinds the server's response to
// recover salt_point = q*hash_to_group(password), derives the
// effective salt by hashing its compressed encoding, and then runs
// the same KDF-and-CPace-substep tail as the standard variant
// (spec §4.5).
func (c *ClientStrongAwaitingSalt) ReceiveStrongAugmentationInfo(msg StrongAugmentationInfoMsg, kdfFunc kdf.Func, ci []byte) (*ClientAwaitingServerAuth, ClientPubMsg, ClientAuthenticatorMsg, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}

	blindedSalt, err := group.DecodePoint(msg.BlindedSalt[:])
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, ErrIllegalPoint
	}

	rInv := group.Invert(c.r)
	saltPoint := group.ScalarMult(rInv, blindedSalt)

	effectiveSalt, err := derivedEffectiveSalt(c.hf, saltPoint)
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}

	w, err := deriveVerifierFromPassword(c.password, effectiveSalt, msg.PbkdfParams, kdfFunc)
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}
	prs := w.Encode()

	next, pubMsg, tbMsg, err := deriveCPaceResponse(c.rng, c.hf, c.ssid, prs, ci, msg.XPub)
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}
	c.consumed = true
	return next, pubMsg, tbMsg, nil
}

// derivedEffectiveSalt hashes a group element's compressed encoding
// into a PHC SaltString, the "derives the effective salt by hashing
// salt_point's compressed encoding" step of spec §4.5. It uses the
// session's configured hash primitive (hf) rather than a hardcoded
// one, so the strong-augmentation path is as hash-generic as the rest
// of the transcript (see oprf.go's hashPasswordToGroup, which threads
// hf through for the sibling OPRF-blind hash in the same variant).
func derivedEffectiveSalt(hf HashFunc, p *group.Point) (phc.SaltString, error) {
	h := hf()
	h.Write(p.Encode())
	sum := h.Sum(nil)
	return phc.NewSaltStringFromBytes(sum[:16])
}
