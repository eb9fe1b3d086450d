package aucpace

import (
	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/kdf"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
	"github.com/thatnewyorker/PAKEs-Conflux/secret"
)

// ClientStart is the initial client role-state, symmetric to
// ServerStart (spec §4.4).
type ClientStart struct {
	rng      CSPRNG
	hf       HashFunc
	consumed bool
}

// NewClient creates a fresh client role-state using the default
// SHA-512 hash primitive.
func NewClient(rng CSPRNG) *ClientStart {
	return NewClientWithHash(rng, SHA512HashFunc)
}

// NewClientWithHash is NewClient with an explicit hash primitive.
func NewClientWithHash(rng CSPRNG, hf HashFunc) *ClientStart {
	return &ClientStart{rng: rng, hf: hf}
}

// checkNotConsumed reports ErrOutOfSequence if this state handle has
// already been used, without itself marking it consumed: a failed
// attempt (RNG failure, a rejected point, ...) should leave the
// handle retryable (spec §5, §8 property 6).
func (c *ClientStart) checkNotConsumed() error {
	if c == nil || c.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// BeginFreshSSID generates the client's fresh 16-byte nonce t, to be
// sent to the server, and returns the awaiting-nonce state that will
// establish the SSID once the server's nonce s is received.
func (c *ClientStart) BeginFreshSSID() (*ClientAwaitingServerNonce, ClientNonceMsg, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, ClientNonceMsg{}, err
	}
	nonce, err := generateNonce(c.rng, NonceLen)
	if err != nil {
		return nil, ClientNonceMsg{}, err
	}
	c.consumed = true
	var msg ClientNonceMsg
	copy(msg.T[:], nonce)
	next := &ClientAwaitingServerNonce{t: nonce, rng: c.rng, hf: c.hf}
	return next, msg, nil
}

// BeginPrestablishedSSID adopts an externally-established SSID value
// directly (spec §4.4).
func (c *ClientStart) BeginPrestablishedSSID(bytes []byte) (*ClientSsidEstablished, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, err
	}
	if len(bytes) < MinSSIDLen {
		return nil, ErrInsufficientSsidLength
	}
	c.consumed = true
	h := newDomainHash(c.hf, domainH0)
	h.Write(bytes)
	ssid := h.Sum(nil)
	return &ClientSsidEstablished{ssid: ssid, rng: c.rng, hf: c.hf}, nil
}

// ClientAwaitingServerNonce holds the client's own nonce t while
// awaiting the server's nonce s.
type ClientAwaitingServerNonce struct {
	t        []byte
	rng      CSPRNG
	hf       HashFunc
	consumed bool
}

func (c *ClientAwaitingServerNonce) checkNotConsumed() error {
	if c == nil || c.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveServerNonce computes SSID = H0(s, t) from the server's nonce
// s and the client's own nonce t.
func (c *ClientAwaitingServerNonce) ReceiveServerNonce(s [NonceLen]byte) (*ClientSsidEstablished, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, err
	}
	c.consumed = true
	ssid := computeSSID(c.hf, s[:], c.t)
	return &ClientSsidEstablished{ssid: ssid, rng: c.rng, hf: c.hf}, nil
}

// ClientSsidEstablished holds an immutable SSID and is ready to
// process the server's augmentation response.
type ClientSsidEstablished struct {
	ssid     []byte
	rng      CSPRNG
	hf       HashFunc
	consumed bool
}

func (c *ClientSsidEstablished) checkNotConsumed() error {
	if c == nil || c.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// SSID returns the established sub-session identifier.
func (c *ClientSsidEstablished) SSID() []byte {
	out := make([]byte, len(c.ssid))
	copy(out, c.ssid)
	return out
}

// deriveCPaceResponse runs the shared tail of the client's CPace
// substep and key-confirmation computation once PRS is known: it
// generates the client's own ephemeral keypair relative to the
// password-bound generator, computes sk1 from the server's X, and
// computes both authenticator tags locally (the client does not need
// to wait for the server's Ta to compute its own Tb, since both tags
// are pure functions of sk1; spec §4.4).
func deriveCPaceResponse(rng CSPRNG, hf HashFunc, ssid, prs, ci []byte, serverXPub [PointLen]byte) (*ClientAwaitingServerAuth, ClientPubMsg, ClientAuthenticatorMsg, error) {
	X, err := group.DecodePoint(serverXPub[:])
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, ErrIllegalPoint
	}

	y, Y, _, err := generateEphemeralKeypair(rng, hf, ssid, prs, ci)
	if err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}

	sharedPoint := group.ScalarMult(y, X)
	sk1 := computeFirstSessionKey(hf, ssid, sharedPoint.Encode())
	ta, tb := computeAuthenticatorMessages(hf, ssid, sk1)

	var pubMsg ClientPubMsg
	copy(pubMsg.YPub[:], Y.Encode())
	var tbMsg ClientAuthenticatorMsg
	copy(tbMsg.Tb[:], tb)

	next := &ClientAwaitingServerAuth{ssid: ssid, hf: hf, sk1: sk1, expectedTa: ta}
	return next, pubMsg, tbMsg, nil
}

// ReceiveAugmentationInfo processes the server's standard
// AugmentationInfo message: it always runs the full KDF over
// (password, salt, params) even though, on the server's
// lookup_failed path, the salt and params are arbitrary - the client
// cannot distinguish this case and must not try to (spec §4.4).
// Failure surfaces only later, at authenticator verification. An
// illegal server point or a KDF failure leaves this state unconsumed
// and retryable.
func (c *ClientSsidEstablished) ReceiveAugmentationInfo(password []byte, msg AugmentationInfoMsg, kdfFunc kdf.Func, ci []byte) (*ClientAwaitingServerAuth, ClientPubMsg, ClientAuthenticatorMsg, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, ClientPubMsg{}, ClientAuthenticatorMsg{}, err
	}

	w, err := deriveVerifierFromPassword(password, msg.Salt, msg.PbkdfParams, kdfFunc)
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

// deriveVerifierFromPassword runs the pluggable KDF over (password,
// salt, params) and maps its output to the verifier point W = w*G,
// per spec §4.2's scalar_from_password_hash and §3's definition of W.
func deriveVerifierFromPassword(password []byte, salt phc.SaltString, params phc.ParamsString, kdfFunc kdf.Func) (*group.Point, error) {
	hashBytes, err := kdfFunc(password, salt, params)
	if err != nil {
		return nil, ErrPasswordHashing
	}
	w, err := group.ScalarFromPasswordHash(hashBytes)
	if err != nil {
		switch err {
		case group.ErrHashEmpty:
			return nil, ErrHashEmpty
		case group.ErrHashSizeInvalid:
			return nil, ErrHashSizeInvalid
		default:
			return nil, err
		}
	}
	return group.ScalarMultBase(w), nil
}

// ClientAwaitingServerAuth has sent its CPace public key Y and
// authenticator Tb, and is awaiting the server's authenticator Ta.
type ClientAwaitingServerAuth struct {
	ssid       []byte
	hf         HashFunc
	sk1        []byte
	expectedTa []byte
	consumed   bool
}

func (c *ClientAwaitingServerAuth) checkNotConsumed() error {
	if c == nil || c.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveServerAuthenticator verifies the server's confirmation tag Ta
// in constant time (spec §4.4). On a mismatch all session material is
// zeroized and ErrAuthenticationFailed is returned without emitting a
// session key; like the server's Confirmation step, a mismatch here
// consumes the state rather than leaving it retryable.
func (c *ClientAwaitingServerAuth) ReceiveServerAuthenticator(msg ServerAuthenticatorMsg) (*ClientSessionEstablished, error) {
	if err := c.checkNotConsumed(); err != nil {
		return nil, err
	}
	c.consumed = true

	match := secret.ConstantTimeEqualBytes(msg.Ta[:], c.expectedTa)
	if !match {
		zeroizeBytes(c.sk1)
		zeroizeBytes(c.expectedTa)
		return nil, ErrAuthenticationFailed
	}

	sk := computeSessionKey(c.hf, c.ssid, c.sk1)
	zeroizeBytes(c.sk1)
	return &ClientSessionEstablished{sk: secret.NewKey(sk)}, nil
}

// ClientSessionEstablished is the terminal client state, holding only
// the derived session key.
type ClientSessionEstablished struct {
	sk       *secret.Key
	consumed bool
}

// IntoSessionKey consumes the terminal state and returns the derived
// session key.
func (c *ClientSessionEstablished) IntoSessionKey() (*secret.Key, error) {
	if c == nil || c.consumed {
		return nil, ErrOutOfSequence
	}
	c.consumed = true
	return c.sk, nil
}
