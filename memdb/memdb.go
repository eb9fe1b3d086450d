// Package memdb provides in-memory reference implementations of the
// aucpace.Database and aucpace.StrongDatabase interfaces, for tests
// and examples. Grounded in the teacher package's own Server struct,
// which keeps its password files in a map rather than delegating to
// an external store (pake.go: passwordFiles map[string]pwdFile).
package memdb

import (
	"sync"

	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

type standardEntry struct {
	verifier *group.Point
	salt     phc.SaltString
	uad      []byte
	params   phc.ParamsString
}

// InMemoryDatabase is a map-backed aucpace.Database.
type InMemoryDatabase struct {
	mu      sync.RWMutex
	entries map[string]standardEntry
}

// NewInMemoryDatabase returns an empty InMemoryDatabase.
func NewInMemoryDatabase() *InMemoryDatabase {
	return &InMemoryDatabase{entries: make(map[string]standardEntry)}
}

// LookupVerifier implements aucpace.Database.
func (d *InMemoryDatabase) LookupVerifier(username []byte) (*group.Point, phc.SaltString, phc.ParamsString, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[string(username)]
	if !ok {
		return nil, phc.SaltString{}, phc.ParamsString{}, false
	}
	return e.verifier, e.salt, e.params, true
}

// StoreVerifier implements aucpace.Database.
func (d *InMemoryDatabase) StoreVerifier(username []byte, salt phc.SaltString, uad []byte, verifier *group.Point, params phc.ParamsString) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[string(username)] = standardEntry{verifier: verifier, salt: salt, uad: uad, params: params}
}

type strongEntry struct {
	verifier *group.Point
	exponent *group.Scalar
	uad      []byte
	params   phc.ParamsString
}

// InMemoryStrongDatabase is a map-backed aucpace.StrongDatabase.
type InMemoryStrongDatabase struct {
	mu      sync.RWMutex
	entries map[string]strongEntry
}

// NewInMemoryStrongDatabase returns an empty InMemoryStrongDatabase.
func NewInMemoryStrongDatabase() *InMemoryStrongDatabase {
	return &InMemoryStrongDatabase{entries: make(map[string]strongEntry)}
}

// LookupVerifierStrong implements aucpace.StrongDatabase.
func (d *InMemoryStrongDatabase) LookupVerifierStrong(username []byte) (*group.Point, *group.Scalar, phc.ParamsString, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[string(username)]
	if !ok {
		return nil, nil, phc.ParamsString{}, false
	}
	return e.verifier, e.exponent, e.params, true
}

// StoreVerifierStrong implements aucpace.StrongDatabase.
func (d *InMemoryStrongDatabase) StoreVerifierStrong(username []byte, uad []byte, verifier *group.Point, exponent *group.Scalar, params phc.ParamsString) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[string(username)] = strongEntry{verifier: verifier, exponent: exponent, uad: uad, params: params}
}
