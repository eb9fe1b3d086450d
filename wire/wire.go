// Package wire provides a concrete binary codec for the tagged sum
// messages defined in spec §6. It deliberately uses a fixed-width,
// length-prefixed encoding via encoding/binary rather than
// encoding/json (unlike the teacher package's own JSON-based
// ciphertextData envelope in pake.go) because every AuCPace wire
// message is a fixed-shape tagged struct, not an arbitrary document;
// Unmarshal rejects any length mismatch instead of silently
// zero-extending or truncating.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/thatnewyorker/PAKEs-Conflux"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
)

// ErrTruncated indicates the input buffer ended before a field of a
// variable-length message (a length prefix, its string, or a point)
// could be read.
var ErrTruncated = errors.New("wire: truncated message")

// ErrMalformed indicates a wrong tag, a fixed-size message of the
// wrong length, or bytes left over after the last field. A salt or
// params string that is not valid PHC text is reported with the phc
// package's own error instead.
var ErrMalformed = errors.New("wire: malformed message")

// Message tags (spec §6).
const (
	TagClientNonce byte = iota
	TagServerNonce
	TagAugmentationInfo
	TagStrongAugmentationInfo
	TagClientBlindedSalt
	TagClientPub
	TagClientAuthenticator
	TagServerAuthenticator
)

func putString(buf []byte, off int, s string) int {
	binary.BigEndian.PutUint16(buf[off:], uint16(len(s)))
	off += 2
	copy(buf[off:], s)
	return off + len(s)
}

func getString(buf []byte, off int) (string, int, error) {
	if off+2 > len(buf) {
		return "", 0, ErrTruncated
	}
	n := int(binary.BigEndian.Uint16(buf[off:]))
	off += 2
	if off+n > len(buf) {
		return "", 0, ErrTruncated
	}
	return string(buf[off : off+n]), off + n, nil
}

func stringLen(s string) int { return 2 + len(s) }

// MarshalClientNonce encodes a ClientNonceMsg.
func MarshalClientNonce(m aucpace.ClientNonceMsg) []byte {
	out := make([]byte, 1+aucpace.NonceLen)
	out[0] = TagClientNonce
	copy(out[1:], m.T[:])
	return out
}

// UnmarshalClientNonce decodes a ClientNonceMsg.
func UnmarshalClientNonce(b []byte) (aucpace.ClientNonceMsg, error) {
	if len(b) != 1+aucpace.NonceLen || b[0] != TagClientNonce {
		return aucpace.ClientNonceMsg{}, ErrMalformed
	}
	var m aucpace.ClientNonceMsg
	copy(m.T[:], b[1:])
	return m, nil
}

// MarshalServerNonce encodes a ServerNonceMsg.
func MarshalServerNonce(m aucpace.ServerNonceMsg) []byte {
	out := make([]byte, 1+aucpace.NonceLen)
	out[0] = TagServerNonce
	copy(out[1:], m.S[:])
	return out
}

// UnmarshalServerNonce decodes a ServerNonceMsg.
func UnmarshalServerNonce(b []byte) (aucpace.ServerNonceMsg, error) {
	if len(b) != 1+aucpace.NonceLen || b[0] != TagServerNonce {
		return aucpace.ServerNonceMsg{}, ErrMalformed
	}
	var m aucpace.ServerNonceMsg
	copy(m.S[:], b[1:])
	return m, nil
}

// MarshalAugmentationInfo encodes an AugmentationInfoMsg.
func MarshalAugmentationInfo(m aucpace.AugmentationInfoMsg) []byte {
	size := 1 + stringLen(m.Group) + aucpace.PointLen + stringLen(m.Salt.String()) + stringLen(m.PbkdfParams.String())
	out := make([]byte, size)
	out[0] = TagAugmentationInfo
	off := 1
	off = putString(out, off, m.Group)
	copy(out[off:], m.XPub[:])
	off += aucpace.PointLen
	off = putString(out, off, m.Salt.String())
	putString(out, off, m.PbkdfParams.String())
	return out
}

// UnmarshalAugmentationInfo decodes an AugmentationInfoMsg.
func UnmarshalAugmentationInfo(b []byte) (aucpace.AugmentationInfoMsg, error) {
	if len(b) < 1 || b[0] != TagAugmentationInfo {
		return aucpace.AugmentationInfoMsg{}, ErrMalformed
	}
	off := 1
	group, off, err := getString(b, off)
	if err != nil {
		return aucpace.AugmentationInfoMsg{}, err
	}
	if off+aucpace.PointLen > len(b) {
		return aucpace.AugmentationInfoMsg{}, ErrTruncated
	}
	var xpub [32]byte
	copy(xpub[:], b[off:off+aucpace.PointLen])
	off += aucpace.PointLen

	saltStr, off, err := getString(b, off)
	if err != nil {
		return aucpace.AugmentationInfoMsg{}, err
	}
	paramsStr, off, err := getString(b, off)
	if err != nil {
		return aucpace.AugmentationInfoMsg{}, err
	}
	if off != len(b) {
		return aucpace.AugmentationInfoMsg{}, ErrMalformed
	}

	salt, err := phc.ParseSaltString(saltStr)
	if err != nil {
		return aucpace.AugmentationInfoMsg{}, err
	}
	params, err := phc.ParseParamsString(paramsStr)
	if err != nil {
		return aucpace.AugmentationInfoMsg{}, err
	}

	return aucpace.AugmentationInfoMsg{Group: group, XPub: xpub, Salt: salt, PbkdfParams: params}, nil
}

// MarshalStrongAugmentationInfo encodes a StrongAugmentationInfoMsg.
func MarshalStrongAugmentationInfo(m aucpace.StrongAugmentationInfoMsg) []byte {
	size := 1 + stringLen(m.Group) + aucpace.PointLen + aucpace.PointLen + stringLen(m.PbkdfParams.String())
	out := make([]byte, size)
	out[0] = TagStrongAugmentationInfo
	off := 1
	off = putString(out, off, m.Group)
	copy(out[off:], m.XPub[:])
	off += aucpace.PointLen
	copy(out[off:], m.BlindedSalt[:])
	off += aucpace.PointLen
	putString(out, off, m.PbkdfParams.String())
	return out
}

// UnmarshalStrongAugmentationInfo decodes a StrongAugmentationInfoMsg.
func UnmarshalStrongAugmentationInfo(b []byte) (aucpace.StrongAugmentationInfoMsg, error) {
	if len(b) < 1 || b[0] != TagStrongAugmentationInfo {
		return aucpace.StrongAugmentationInfoMsg{}, ErrMalformed
	}
	off := 1
	group, off, err := getString(b, off)
	if err != nil {
		return aucpace.StrongAugmentationInfoMsg{}, err
	}
	if off+2*aucpace.PointLen > len(b) {
		return aucpace.StrongAugmentationInfoMsg{}, ErrTruncated
	}
	var xpub, blindedSalt [32]byte
	copy(xpub[:], b[off:off+aucpace.PointLen])
	off += aucpace.PointLen
	copy(blindedSalt[:], b[off:off+aucpace.PointLen])
	off += aucpace.PointLen

	paramsStr, off, err := getString(b, off)
	if err != nil {
		return aucpace.StrongAugmentationInfoMsg{}, err
	}
	if off != len(b) {
		return aucpace.StrongAugmentationInfoMsg{}, ErrMalformed
	}
	params, err := phc.ParseParamsString(paramsStr)
	if err != nil {
		return aucpace.StrongAugmentationInfoMsg{}, err
	}
	return aucpace.StrongAugmentationInfoMsg{Group: group, XPub: xpub, BlindedSalt: blindedSalt, PbkdfParams: params}, nil
}

// MarshalClientBlindedSalt encodes a ClientBlindedSaltMsg.
func MarshalClientBlindedSalt(m aucpace.ClientBlindedSaltMsg) []byte {
	out := make([]byte, 1+aucpace.PointLen)
	out[0] = TagClientBlindedSalt
	copy(out[1:], m.B[:])
	return out
}

// UnmarshalClientBlindedSalt decodes a ClientBlindedSaltMsg.
func UnmarshalClientBlindedSalt(b []byte) (aucpace.ClientBlindedSaltMsg, error) {
	if len(b) != 1+aucpace.PointLen || b[0] != TagClientBlindedSalt {
		return aucpace.ClientBlindedSaltMsg{}, ErrMalformed
	}
	var m aucpace.ClientBlindedSaltMsg
	copy(m.B[:], b[1:])
	return m, nil
}

// MarshalClientPub encodes a ClientPubMsg.
func MarshalClientPub(m aucpace.ClientPubMsg) []byte {
	out := make([]byte, 1+aucpace.PointLen)
	out[0] = TagClientPub
	copy(out[1:], m.YPub[:])
	return out
}

// UnmarshalClientPub decodes a ClientPubMsg.
func UnmarshalClientPub(b []byte) (aucpace.ClientPubMsg, error) {
	if len(b) != 1+aucpace.PointLen || b[0] != TagClientPub {
		return aucpace.ClientPubMsg{}, ErrMalformed
	}
	var m aucpace.ClientPubMsg
	copy(m.YPub[:], b[1:])
	return m, nil
}

// MarshalClientAuthenticator encodes a ClientAuthenticatorMsg.
func MarshalClientAuthenticator(m aucpace.ClientAuthenticatorMsg) []byte {
	out := make([]byte, 1+aucpace.HashOutputLen)
	out[0] = TagClientAuthenticator
	copy(out[1:], m.Tb[:])
	return out
}

// UnmarshalClientAuthenticator decodes a ClientAuthenticatorMsg.
func UnmarshalClientAuthenticator(b []byte) (aucpace.ClientAuthenticatorMsg, error) {
	if len(b) != 1+aucpace.HashOutputLen || b[0] != TagClientAuthenticator {
		return aucpace.ClientAuthenticatorMsg{}, ErrMalformed
	}
	var m aucpace.ClientAuthenticatorMsg
	copy(m.Tb[:], b[1:])
	return m, nil
}

// MarshalServerAuthenticator encodes a ServerAuthenticatorMsg.
func MarshalServerAuthenticator(m aucpace.ServerAuthenticatorMsg) []byte {
	out := make([]byte, 1+aucpace.HashOutputLen)
	out[0] = TagServerAuthenticator
	copy(out[1:], m.Ta[:])
	return out
}

// UnmarshalServerAuthenticator decodes a ServerAuthenticatorMsg.
func UnmarshalServerAuthenticator(b []byte) (aucpace.ServerAuthenticatorMsg, error) {
	if len(b) != 1+aucpace.HashOutputLen || b[0] != TagServerAuthenticator {
		return aucpace.ServerAuthenticatorMsg{}, ErrMalformed
	}
	var m aucpace.ServerAuthenticatorMsg
	copy(m.Ta[:], b[1:])
	return m, nil
}
