// Package kdf provides a reference password-hashing adapter for the
// AuCPace core's pluggable KDF boundary (spec §1, "out of scope: the
// password-hashing KDF"). The core imports this package only for the
// Func type; Argon2id is the concrete function every example,
// end-to-end test, and the S1
// happy-path scenario use to turn a password into verifier material,
// the same role the teacher package's own argon2.IDKey call plays for
// oprfA/oprfB in crypto.go.
package kdf

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// ErrPasswordHashing is returned when the params string cannot be
// parsed into Argon2id parameters.
var ErrPasswordHashing = errors.New("kdf: password hashing failed")

// Func is the pluggable KDF signature the AuCPace core's
// scalar_from_password_hash boundary expects: given a password, a PHC
// salt and a PHC parameter string, produce the raw hash bytes (32 or
// 64 of them).
type Func func(password []byte, salt phc.SaltString, params phc.ParamsString) ([]byte, error)

// Argon2idParams holds the (m, t, p) triple encoded in a PHC
// ParamsString for Argon2id, e.g. "m=19456,t=2,p=1".
type Argon2idParams struct {
	MemoryKiB  uint32
	Time       uint32
	Threads    uint8
	KeyLen     uint32
}

// DefaultArgon2idParams matches the S1 scenario's literal parameter
// string "m=19456,t=2,p=1" (spec §8).
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{MemoryKiB: 19456, Time: 2, Threads: 1, KeyLen: 32}
}

// Encode renders p as a PHC ParamsString.
func (p Argon2idParams) Encode() phc.ParamsString {
	s, _ := phc.ParseParamsString(
		"m=" + strconv.FormatUint(uint64(p.MemoryKiB), 10) +
			",t=" + strconv.FormatUint(uint64(p.Time), 10) +
			",p=" + strconv.FormatUint(uint64(p.Threads), 10),
	)
	return s
}

func parseArgon2idParams(params phc.ParamsString) (Argon2idParams, error) {
	out := DefaultArgon2idParams()
	out.KeyLen = 32
	s := params.String()
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return Argon2idParams{}, ErrPasswordHashing
		}
		v, err := strconv.ParseUint(kv[1], 10, 32)
		if err != nil {
			return Argon2idParams{}, ErrPasswordHashing
		}
		switch kv[0] {
		case "m":
			out.MemoryKiB = uint32(v)
		case "t":
			out.Time = uint32(v)
		case "p":
			out.Threads = uint8(v)
		default:
			return Argon2idParams{}, ErrPasswordHashing
		}
	}
	return out, nil
}

// Argon2id is the reference Func implementation, wrapping
// golang.org/x/crypto/argon2.IDKey exactly the way the teacher
// package's oprfA/oprfB wrap their OPRF output: hash-then-stretch.
func Argon2id(password []byte, salt phc.SaltString, params phc.ParamsString) ([]byte, error) {
	p, err := parseArgon2idParams(params)
	if err != nil {
		return nil, err
	}
	saltBytes, err := salt.Decode()
	if err != nil {
		return nil, ErrPasswordHashing
	}
	return argon2.IDKey(password, saltBytes, p.Time, p.MemoryKiB, p.Threads, p.KeyLen), nil
}
