package aucpace

import (
	"github.com/thatnewyorker/PAKEs-Conflux/group"
	"github.com/thatnewyorker/PAKEs-Conflux/phc"
	"github.com/thatnewyorker/PAKEs-Conflux/secret"
)

// ServerStart is the initial server role-state (spec §4.3).
type ServerStart struct {
	rng      CSPRNG
	hf       HashFunc
	hiding   *pseudoVerifierHiding
	consumed bool
}

// NewServer creates a fresh server role-state using the default
// SHA-512 hash primitive. serverSecretSeed is the long-term per-server
// key for the lookup_failed hiding construction (spec §9 Open
// Question); it should be generated once per server process and kept
// secret.
func NewServer(rng CSPRNG, serverSecretSeed []byte) *ServerStart {
	return NewServerWithHash(rng, serverSecretSeed, SHA512HashFunc)
}

// NewServerWithHash is NewServer with an explicit hash primitive,
// exercising the "polymorphic hash" design note (§9).
func NewServerWithHash(rng CSPRNG, serverSecretSeed []byte, hf HashFunc) *ServerStart {
	return &ServerStart{rng: rng, hf: hf, hiding: newPseudoVerifierHiding(serverSecretSeed)}
}

// checkNotConsumed reports ErrOutOfSequence if this state handle has
// already been used. It does not itself mark the state consumed: a
// caller only does that once its operation has fully succeeded, so
// that a failed attempt (RNG failure, a rejected point, ...) leaves
// the handle retryable (spec §5, §8 property 6).
func (s *ServerStart) checkNotConsumed() error {
	if s == nil || s.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// BeginFreshSSID generates a fresh 16-byte server nonce s, to be sent
// to the client, and returns the awaiting-nonce state that will
// establish the SSID once the client's nonce t is received. A CSPRNG
// failure leaves this state unconsumed and retryable.
func (s *ServerStart) BeginFreshSSID() (*ServerAwaitingClientNonce, ServerNonceMsg, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, ServerNonceMsg{}, err
	}
	nonce, err := generateNonce(s.rng, NonceLen)
	if err != nil {
		return nil, ServerNonceMsg{}, err
	}
	s.consumed = true
	var msg ServerNonceMsg
	copy(msg.S[:], nonce)
	next := &ServerAwaitingClientNonce{s: nonce, rng: s.rng, hf: s.hf, hiding: s.hiding}
	return next, msg, nil
}

// BeginPrestablishedSSID adopts an externally-established SSID value
// directly, hashing the supplied material with H0 (spec §4.3). bytes
// must be at least MinSSIDLen long; a too-short value leaves this
// state unconsumed and retryable with corrected input.
func (s *ServerStart) BeginPrestablishedSSID(bytes []byte) (*ServerSsidEstablished, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, err
	}
	if len(bytes) < MinSSIDLen {
		return nil, ErrInsufficientSsidLength
	}
	s.consumed = true
	h := newDomainHash(s.hf, domainH0)
	h.Write(bytes)
	ssid := h.Sum(nil)
	return &ServerSsidEstablished{ssid: ssid, rng: s.rng, hf: s.hf, hiding: s.hiding}, nil
}

// ServerAwaitingClientNonce holds the server's own nonce s while
// awaiting the client's nonce t.
type ServerAwaitingClientNonce struct {
	s        []byte
	rng      CSPRNG
	hf       HashFunc
	hiding   *pseudoVerifierHiding
	consumed bool
}

func (s *ServerAwaitingClientNonce) checkNotConsumed() error {
	if s == nil || s.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveClientNonce computes SSID = H0(s, t) from the server's own
// nonce and the client's nonce t.
func (s *ServerAwaitingClientNonce) ReceiveClientNonce(t [NonceLen]byte) (*ServerSsidEstablished, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, err
	}
	s.consumed = true
	ssid := computeSSID(s.hf, s.s, t[:])
	return &ServerSsidEstablished{ssid: ssid, rng: s.rng, hf: s.hf, hiding: s.hiding}, nil
}

// ServerSsidEstablished holds an immutable SSID and is ready to
// process a client's identification/augmentation request.
type ServerSsidEstablished struct {
	ssid     []byte
	rng      CSPRNG
	hf       HashFunc
	hiding   *pseudoVerifierHiding
	consumed bool
}

func (s *ServerSsidEstablished) checkNotConsumed() error {
	if s == nil || s.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// SSID returns the established sub-session identifier.
func (s *ServerSsidEstablished) SSID() []byte {
	out := make([]byte, len(s.ssid))
	copy(out, s.ssid)
	return out
}

// generateEphemeralKeypair derives the password-bound generator G_pw =
// hash_to_group(H1(SSID, PRS, CI)) and a fresh ephemeral keypair
// (x, X = x*G_pw), the CPace substep (spec §4.1 H1, §4.3 step 3).
// X is computed relative to G_pw rather than the plain base point.
func generateEphemeralKeypair(rng CSPRNG, hf HashFunc, ssid, prs, ci []byte) (priv *group.Scalar, pub *group.Point, gpw *group.Point, err error) {
	h1 := computePasswordGeneratorInput(hf, ssid, prs, ci)
	gpw, err = group.HashToGroup(h1)
	if err != nil {
		return nil, nil, nil, err
	}
	wide, err := generateWideScalarBytes(rng)
	if err != nil {
		return nil, nil, nil, err
	}
	priv, err = group.ScalarFromUniformWideBytes(wide)
	if err != nil {
		return nil, nil, nil, err
	}
	pub = group.ScalarMult(priv, gpw)
	return priv, pub, gpw, nil
}

// GenerateClientInfo processes a client's identification request for
// the standard augmentation variant (spec §4.3, SsidEstablished op).
// ci is the caller-supplied channel identifier binding the exchange
// to a transport channel.
//
// If db has no entry for username, the lookup_failed path is taken
// transparently: a deterministic pseudo-verifier and pseudo-salt are
// derived from (SSID, username) and the server secret seed, and
// default PBKDF params are returned. The resulting AugmentationInfoMsg
// is indistinguishable in shape from the real-user response; the
// mismatch only surfaces later, at authenticator verification, as
// ErrAuthenticationFailed (spec §7, §8 property 2).
func (s *ServerSsidEstablished) GenerateClientInfo(username []byte, db Database, ci []byte) (*ServerAugmented, AugmentationInfoMsg, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, AugmentationInfoMsg{}, err
	}

	var w PasswordVerifier
	var salt phc.SaltString
	params := phc.DefaultParamsString()

	if verifier, dbSalt, dbParams, ok := db.LookupVerifier(username); ok {
		w, salt, params = verifier, dbSalt, dbParams
	} else {
		pseudoW, pseudoSalt, err := s.hiding.pseudoVerifier(s.ssid, username)
		if err != nil {
			return nil, AugmentationInfoMsg{}, err
		}
		w, salt = pseudoW, pseudoSalt
	}

	prs := w.Encode()
	x, X, _, err := generateEphemeralKeypair(s.rng, s.hf, s.ssid, prs, ci)
	if err != nil {
		return nil, AugmentationInfoMsg{}, err
	}
	s.consumed = true

	msg := AugmentationInfoMsg{
		Group:       GroupName,
		Salt:        salt,
		PbkdfParams: params,
	}
	copy(msg.XPub[:], X.Encode())

	next := &ServerAugmented{
		ssid: s.ssid, rng: s.rng, hf: s.hf,
		x: x, prs: prs, ci: append([]byte(nil), ci...),
	}
	return next, msg, nil
}

// ServerAugmented has sent its AugmentationInfo (or
// StrongAugmentationInfo) and is awaiting the client's CPace public
// key Y.
type ServerAugmented struct {
	ssid     []byte
	rng      CSPRNG
	hf       HashFunc
	x        *group.Scalar
	prs      []byte
	ci       []byte
	consumed bool
}

func (s *ServerAugmented) checkNotConsumed() error {
	if s == nil || s.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveClientPub processes the client's ephemeral public key Y,
// completing the CPace substep and computing the two authenticator
// tags (spec §4.3, Augmented op). It returns the ServerAuthenticator
// message (Ta) to send to the client and the Confirmation state that
// retains the expected client authenticator Tb.
//
// An identity-point Y is rejected with ErrIllegalPoint and leaves this
// state unconsumed (spec §8 property 3, scenario S3): the server's
// ephemeral secret x was never used, so the client may retry with a
// corrected Y.
func (s *ServerAugmented) ReceiveClientPub(msg ClientPubMsg) (*ServerConfirmation, ServerAuthenticatorMsg, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, ServerAuthenticatorMsg{}, err
	}

	y, err := group.DecodePoint(msg.YPub[:])
	if err != nil {
		return nil, ServerAuthenticatorMsg{}, ErrIllegalPoint
	}
	s.consumed = true

	sharedPoint := group.ScalarMult(s.x, y)
	sk1 := computeFirstSessionKey(s.hf, s.ssid, sharedPoint.Encode())
	ta, tb := computeAuthenticatorMessages(s.hf, s.ssid, sk1)

	var out ServerAuthenticatorMsg
	copy(out.Ta[:], ta)

	next := &ServerConfirmation{ssid: s.ssid, hf: s.hf, sk1: sk1, expectedTb: tb}
	return next, out, nil
}

// ServerConfirmation has sent Ta and is awaiting the client's
// authenticator Tb.
type ServerConfirmation struct {
	ssid       []byte
	hf         HashFunc
	sk1        []byte
	expectedTb []byte
	consumed   bool
}

func (s *ServerConfirmation) checkNotConsumed() error {
	if s == nil || s.consumed {
		return ErrOutOfSequence
	}
	return nil
}

// ReceiveClientAuthenticator verifies the client's confirmation tag
// Tb in constant time (spec §4.3, Confirmation op). On a mismatch all
// session material is zeroized and ErrAuthenticationFailed is
// returned without advancing to a session key; this is the only error
// ever raised for bad credentials, whether the account exists or not.
// Unlike the earlier transitions, a mismatch here consumes the state:
// a bad authenticator terminates the exchange rather than leaving it
// retryable (spec §4.3 Confirmation, "terminate ... do not emit a key").
func (s *ServerConfirmation) ReceiveClientAuthenticator(msg ClientAuthenticatorMsg) (*ServerSessionEstablished, error) {
	if err := s.checkNotConsumed(); err != nil {
		return nil, err
	}
	s.consumed = true

	match := secret.ConstantTimeEqualBytes(msg.Tb[:], s.expectedTb)
	if !match {
		zeroizeBytes(s.sk1)
		zeroizeBytes(s.expectedTb)
		return nil, ErrAuthenticationFailed
	}

	sk := computeSessionKey(s.hf, s.ssid, s.sk1)
	zeroizeBytes(s.sk1)
	return &ServerSessionEstablished{sk: secret.NewKey(sk)}, nil
}

// ServerSessionEstablished is the terminal server state, holding only
// the derived session key.
type ServerSessionEstablished struct {
	sk       *secret.Key
	consumed bool
}

// IntoSessionKey consumes the terminal state and returns the derived
// session key.
func (s *ServerSessionEstablished) IntoSessionKey() (*secret.Key, error) {
	if s == nil || s.consumed {
		return nil, ErrOutOfSequence
	}
	s.consumed = true
	return s.sk, nil
}

func zeroizeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
