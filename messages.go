package aucpace

import "github.com/thatnewyorker/PAKEs-Conflux/phc"

// ServerNonceMsg carries the server's fresh SSID-establishment nonce
// s (spec §6, ServerNonce).
type ServerNonceMsg struct {
	S [NonceLen]byte
}

// ClientNonceMsg carries the client's fresh SSID-establishment nonce
// t (spec §6, ClientNonce).
type ClientNonceMsg struct {
	T [NonceLen]byte
}

// AugmentationInfoMsg is the server's standard-augmentation response
// (spec §6).
type AugmentationInfoMsg struct {
	Group       string
	XPub        [PointLen]byte
	Salt        phc.SaltString
	PbkdfParams phc.ParamsString
}

// StrongAugmentationInfoMsg is the server's strong-augmentation
// response (spec §6).
type StrongAugmentationInfoMsg struct {
	Group       string
	XPub        [PointLen]byte
	BlindedSalt [PointLen]byte
	PbkdfParams phc.ParamsString
}

// ClientBlindedSaltMsg carries the client's OPRF-blinded salt request
// B (spec §4.5).
type ClientBlindedSaltMsg struct {
	B [PointLen]byte
}

// ClientPubMsg carries the client's CPace ephemeral public key Y
// (spec §6, ClientPub).
type ClientPubMsg struct {
	YPub [PointLen]byte
}

// ClientAuthenticatorMsg carries the client's confirmation tag Tb
// (spec §6, ClientAuthenticator).
type ClientAuthenticatorMsg struct {
	Tb [HashOutputLen]byte
}

// ServerAuthenticatorMsg carries the server's confirmation tag Ta
// (spec §6, ServerAuthenticator).
type ServerAuthenticatorMsg struct {
	Ta [HashOutputLen]byte
}
