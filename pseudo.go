package aucpace

import (
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"

	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// pseudoVerifierHiding resolves the spec's Open Question (§9): the
// lookup_failed pseudo-verifier derivation is a keyed PRF over a
// per-server secret seed, so that repeated probes of the same
// (SSID, username) are deterministic and its output is shaped like a
// genuine verifier.
//
// The seed keys golang.org/x/crypto/blake2b in keyed mode - the same
// primitive the teacher package's own prf helper in crypto.go uses
// ("prf is a pseudorandom function, implemented with keyed Blake2B") -
// evaluated over SSID||username to obtain 64 uniform bytes. Those
// bytes are then expanded with golang.org/x/crypto/hkdf into
// independent subkeys for the pseudo-verifier scalar, the pseudo-salt,
// and (strong variant) the pseudo-exponent, the same "split one keyed
// secret into several independent values via HKDF" shape as the
// teacher's own deriveHKDFKeys.
type pseudoVerifierHiding struct {
	seed []byte
}

func newPseudoVerifierHiding(seed []byte) *pseudoVerifierHiding {
	cp := make([]byte, len(seed))
	copy(cp, seed)
	return &pseudoVerifierHiding{seed: cp}
}

func (p *pseudoVerifierHiding) destroy() {
	for i := range p.seed {
		p.seed[i] = 0
	}
	p.seed = nil
}

// keyedPRF evaluates the per-server keyed PRF over ssid||username.
func (p *pseudoVerifierHiding) keyedPRF(ssid, username []byte) ([]byte, error) {
	mac, err := blake2b.New(64, p.seed)
	if err != nil {
		return nil, err
	}
	mac.Write(ssid)
	mac.Write(username)
	return mac.Sum(nil), nil
}

// pseudoVerifier derives a deterministic pseudo-verifier point and
// pseudo-salt for the lookup_failed path (spec §4.3 step 2). The
// derivation is a pure function of (SSID, username, server secret
// seed); params is always phc.DefaultParamsString().
func (p *pseudoVerifierHiding) pseudoVerifier(ssid, username []byte) (verifier *group.Point, salt phc.SaltString, err error) {
	prfOut, err := p.keyedPRF(ssid, username)
	if err != nil {
		return nil, phc.SaltString{}, err
	}

	expander := hkdf.New(SHA512HashFunc, prfOut, nil, []byte("aucpace-pseudo-verifier"))
	scalarMaterial := make([]byte, 64)
	if _, err := io.ReadFull(expander, scalarMaterial); err != nil {
		return nil, phc.SaltString{}, err
	}
	pseudoScalar, err := group.ScalarFromUniformWideBytes(scalarMaterial)
	if err != nil {
		return nil, phc.SaltString{}, err
	}
	pseudoW := group.ScalarMultBase(pseudoScalar)

	saltExpander := hkdf.New(SHA512HashFunc, prfOut, nil, []byte("aucpace-pseudo-salt"))
	saltMaterial := make([]byte, 16)
	if _, err := io.ReadFull(saltExpander, saltMaterial); err != nil {
		return nil, phc.SaltString{}, err
	}
	pseudoSalt, err := phc.NewSaltStringFromBytes(saltMaterial)
	if err != nil {
		return nil, phc.SaltString{}, err
	}

	return pseudoW, pseudoSalt, nil
}

// pseudoExponent derives a deterministic, non-zero pseudo-exponent q'
// for the strong-variant lookup_failed path (spec §4.5). A zero PRF
// output is astronomically unlikely but is defensively mapped to the
// group's One scalar so that blinded_salt = q'*B can never be the
// identity by construction.
func (p *pseudoVerifierHiding) pseudoExponent(ssid, username []byte) (*group.Scalar, error) {
	prfOut, err := p.keyedPRF(ssid, username)
	if err != nil {
		return nil, err
	}

	expander := hkdf.New(SHA512HashFunc, prfOut, nil, []byte("aucpace-pseudo-exponent"))
	material := make([]byte, 64)
	if _, err := io.ReadFull(expander, material); err != nil {
		return nil, err
	}
	q, err := group.ScalarFromUniformWideBytes(material)
	if err != nil {
		return nil, err
	}
	if q.IsZero() {
		return group.One(), nil
	}
	return q, nil
}
