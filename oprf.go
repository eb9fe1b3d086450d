package aucpace

import "github.com/thatnewyorker/PAKEs-Conflux/group"

// oprfBlindDomainTag domain-separates the password-to-group hash used
// to build the client's OPRF blind request B (spec §4.5) from the
// H0..H5 transcript hashes in hash.go; it is not part of the protocol
// transcript itself.
var oprfBlindDomainTag = []byte("aucpace-strong-oprf-blind")

// hashPasswordToGroup maps a raw password to a non-identity group
// element, the H'(password) input to the strong augmentation OPRF
// blind (spec §4.5).
func hashPasswordToGroup(hf HashFunc, password []byte) (*group.Point, error) {
	h := hf()
	h.Write(oprfBlindDomainTag)
	h.Write(password)
	return group.HashToGroup(h.Sum(nil))
}
