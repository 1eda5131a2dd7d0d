package models

import (
	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"golang.org/x/crypto/blake2b"
)

// MaxRawPayloadLen is the largest signing payload that is signed as is.
// Anything longer is replaced by its blake2b-256 digest, as the runtime does
// when it checks the signature.
const MaxRawPayloadLen = 256

// AdditionalSigned is signed over but never sent. Its last three members are
// unit placeholders for extensions without additional data, so they encode
// to nothing.
type AdditionalSigned struct {
	SpecVersion        uint32
	TransactionVersion uint32
	GenesisHash        types.Hash
	CurrentHash        types.Hash
}

func (a AdditionalSigned) Encode(encoder scale.Encoder) error {
	err := encoder.Encode(a.SpecVersion)
	if err != nil {
		return err
	}
	err = encoder.Encode(a.TransactionVersion)
	if err != nil {
		return err
	}
	err = encoder.Write(a.GenesisHash[:])
	if err != nil {
		return err
	}
	return encoder.Write(a.CurrentHash[:])
}

// SignedPayload is the (call, extra, additional) triple a signer signs.
type SignedPayload struct {
	Call       Call
	Extra      Extra
	Additional AdditionalSigned
}

func (p SignedPayload) Encode(encoder scale.Encoder) error {
	err := p.Call.Encode(encoder)
	if err != nil {
		return err
	}
	err = p.Extra.Encode(encoder)
	if err != nil {
		return err
	}
	return p.Additional.Encode(encoder)
}

// Signable returns the bytes to sign: the payload encoding, or its
// blake2b-256 digest when the encoding is longer than MaxRawPayloadLen.
func (p SignedPayload) Signable() ([]byte, error) {
	msg, _, err := p.signable()
	return msg, err
}

// Digested reports whether Signable hashes the payload instead of returning
// it as is.
func (p SignedPayload) Digested() (bool, error) {
	_, digested, err := p.signable()
	return digested, err
}

func (p SignedPayload) signable() ([]byte, bool, error) {
	bz, err := types.EncodeToBytes(p)
	if err != nil {
		return nil, false, err
	}
	if len(bz) > MaxRawPayloadLen {
		h := blake2b.Sum256(bz)
		return h[:], true, nil
	}
	return bz, false, nil
}

// Sign passes the signable bytes to signer. The payload is not kept.
func (p SignedPayload) Sign(signer Signer) (MultiSignature, error) {
	msg, err := p.Signable()
	if err != nil {
		return MultiSignature{}, err
	}
	return signer.Sign(msg)
}

// BuildSignable is the functional form of SignedPayload.Signable.
func BuildSignable(call Call, extra Extra, additional AdditionalSigned) ([]byte, error) {
	return SignedPayload{Call: call, Extra: extra, Additional: additional}.Signable()
}
