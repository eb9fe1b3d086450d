// Package phc provides the SaltString and ParamsString encodings used
// at the AuCPace core's boundary with the (out-of-scope, pluggable)
// password-hashing function. Both are treated as opaque validated
// ASCII and round-tripped through their string form, per spec §6 and
// the serde_saltstring/serde_paramsstring helpers in
// original_source/aucpace/src/utils.rs.
//
// No PHC-string library appears anywhere in the example corpus, so
// this is a small from-scratch encoder/decoder over encoding/base64
// and strings rather than an adopted third-party dependency; see
// DESIGN.md for the per-file justification.
package phc

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidSalt indicates a salt string is not valid unpadded
// base64 or falls outside the PHC length bounds (1-64 encoded chars).
var ErrInvalidSalt = errors.New("phc: invalid salt string")

// ErrInvalidParams indicates a params string is not a well-formed
// comma-separated "key=value" PHC parameter segment.
var ErrInvalidParams = errors.New("phc: invalid params string")

const (
	minSaltB64Len = 1
	maxSaltB64Len = 64
)

// SaltString is a PHC-format salt: base64 (unpadded, standard alphabet)
// ASCII text, 1-64 characters, per the PHC string format spec.
type SaltString struct {
	encoded string
}

// NewSaltStringFromBytes builds a SaltString by base64-encoding raw
// salt bytes.
func NewSaltStringFromBytes(raw []byte) (SaltString, error) {
	if len(raw) == 0 {
		return SaltString{}, ErrInvalidSalt
	}
	enc := base64.RawStdEncoding.EncodeToString(raw)
	return ParseSaltString(enc)
}

// ParseSaltString validates and wraps an already-encoded PHC salt
// string, rejecting malformed input at parse time.
func ParseSaltString(s string) (SaltString, error) {
	if len(s) < minSaltB64Len || len(s) > maxSaltB64Len {
		return SaltString{}, ErrInvalidSalt
	}
	if _, err := base64.RawStdEncoding.DecodeString(s); err != nil {
		return SaltString{}, ErrInvalidSalt
	}
	return SaltString{encoded: s}, nil
}

// String returns the PHC-encoded salt text.
func (s SaltString) String() string { return s.encoded }

// Decode returns the raw salt bytes.
func (s SaltString) Decode() ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(s.encoded)
}

// IsZero reports whether s is the unset zero value.
func (s SaltString) IsZero() bool { return s.encoded == "" }

// ParamsString is the PHC parameter segment: zero or more
// comma-separated "key=value" pairs, e.g. "m=19456,t=2,p=1" for
// Argon2id.
type ParamsString struct {
	raw string
}

// DefaultParamsString is the PHC parameter string emitted on the
// lookup_failed path (spec §4.3 step 2, §8 property 2): an empty
// parameter segment, matching password_hash::ParamsString::default()
// in the original Rust crate.
func DefaultParamsString() ParamsString {
	return ParamsString{raw: ""}
}

// ParseParamsString validates and wraps a PHC parameter segment.
func ParseParamsString(s string) (ParamsString, error) {
	if s == "" {
		return ParamsString{raw: ""}, nil
	}
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return ParamsString{}, ErrInvalidParams
		}
	}
	return ParamsString{raw: s}, nil
}

// String returns the PHC-encoded parameter text.
func (p ParamsString) String() string { return p.raw }

// Equal reports whether two ParamsStrings encode the same text,
// matching the original crate's derived PartialEq on ParamsString
// (used directly by the lookup_failed test assertion
// pbkdf_params == ParamsString::default()).
func (p ParamsString) Equal(other ParamsString) bool { return p.raw == other.raw }
