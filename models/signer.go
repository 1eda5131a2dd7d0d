package models

import (
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v2/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	subkey "github.com/vedhavyas/go-subkey"
	"github.com/vedhavyas/go-subkey/ed25519"
	"github.com/vedhavyas/go-subkey/sr25519"
	"golang.org/x/crypto/blake2b"
)

// SignatureScheme selects the MultiSignature variant a signer produces.
type SignatureScheme uint8

const (
	SchemeEd25519 SignatureScheme = iota
	SchemeSr25519
	SchemeEcdsa
)

func (s SignatureScheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ed25519"
	case SchemeSr25519:
		return "sr25519"
	case SchemeEcdsa:
		return "ecdsa"
	}
	return "unknown"
}

// ParseSignatureScheme accepts "sr25519", "ed25519" or "ecdsa", case-insensitive.
func ParseSignatureScheme(s string) (SignatureScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sr25519":
		return SchemeSr25519, nil
	case "ed25519":
		return SchemeEd25519, nil
	case "ecdsa":
		return SchemeEcdsa, nil
	}
	return 0, fmt.Errorf("unknown signature scheme %q", s)
}

// Signer signs payload bytes. Key handling is up to the implementation.
type Signer interface {
	Sign(msg []byte) (MultiSignature, error)
	PublicKey() []byte
}

// AccountIDFromPublicKey derives the on-chain account id of a public key:
// 32-byte sr25519/ed25519 keys are their own id, 33-byte compressed ecdsa
// keys are blake2b-256 hashed.
func AccountIDFromPublicKey(pub []byte) (types.AccountID, error) {
	switch len(pub) {
	case 32:
		return types.NewAccountID(pub), nil
	case 33:
		h := blake2b.Sum256(pub)
		return types.NewAccountID(h[:]), nil
	}
	return types.AccountID{}, fmt.Errorf("unsupported public key length %d", len(pub))
}

// SignerAddress returns the address the runtime expects for signer.
func SignerAddress(signer Signer) (MultiAddress, error) {
	id, err := AccountIDFromPublicKey(signer.PublicKey())
	if err != nil {
		return MultiAddress{}, err
	}
	return NewMultiAddressFromAccountID(id[:]), nil
}

// KeyringSigner signs with an sr25519 keyring pair. gsrpc signs through the
// external subkey tool, which must be on PATH.
type KeyringSigner struct {
	Pair signature.KeyringPair
}

func NewKeyringSigner(seed string, network uint8) (*KeyringSigner, error) {
	kp, err := signature.KeyringPairFromSecret(seed, network)
	if err != nil {
		return nil, err
	}
	return &KeyringSigner{Pair: kp}, nil
}

// NewKeyringSignerFromPair wraps an existing pair, e.g. signature.TestKeyringPairAlice.
func NewKeyringSignerFromPair(kp signature.KeyringPair) *KeyringSigner {
	return &KeyringSigner{Pair: kp}
}

func (k *KeyringSigner) Sign(msg []byte) (MultiSignature, error) {
	sig, err := signature.Sign(msg, k.Pair.URI)
	if err != nil {
		return MultiSignature{}, err
	}
	return NewMultiSignature(SchemeSr25519, sig)
}

func (k *KeyringSigner) PublicKey() []byte {
	return k.Pair.PublicKey
}

// SubkeySigner signs with a key pair derived by go-subkey from a secret URI
// (mnemonic, hex seed, with optional //hard and /soft junctions).
type SubkeySigner struct {
	kp     subkey.KeyPair
	scheme SignatureScheme
}

func NewSubkeySigner(scheme SignatureScheme, uri string) (*SubkeySigner, error) {
	var s subkey.Scheme
	switch scheme {
	case SchemeSr25519:
		s = sr25519.Scheme{}
	case SchemeEd25519:
		s = ed25519.Scheme{}
	default:
		return nil, fmt.Errorf("subkey signer does not support %s", scheme)
	}
	kp, err := subkey.DeriveKeyPair(s, uri)
	if err != nil {
		return nil, err
	}
	return &SubkeySigner{kp: kp, scheme: scheme}, nil
}

func (s *SubkeySigner) Sign(msg []byte) (MultiSignature, error) {
	sig, err := s.kp.Sign(msg)
	if err != nil {
		return MultiSignature{}, err
	}
	return NewMultiSignature(s.scheme, sig)
}

func (s *SubkeySigner) PublicKey() []byte {
	return s.kp.Public()
}

func (s *SubkeySigner) Scheme() SignatureScheme {
	return s.scheme
}
