package models

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// MultiSignature is the runtime's signature enum: 0 Ed25519, 1 Sr25519, 2 Ecdsa.
type MultiSignature struct {
	IsEd25519 bool
	AsEd25519 types.Signature
	IsSr25519 bool
	AsSr25519 types.Signature
	IsEcdsa   bool
	AsEcdsa   [65]byte
}

// NewMultiSignature tags raw signature bytes with the scheme that produced them.
func NewMultiSignature(scheme SignatureScheme, sig []byte) (MultiSignature, error) {
	switch scheme {
	case SchemeEd25519, SchemeSr25519:
		if len(sig) != 64 {
			return MultiSignature{}, fmt.Errorf("%s signature must be 64 bytes, got %d", scheme, len(sig))
		}
		if scheme == SchemeEd25519 {
			return MultiSignature{IsEd25519: true, AsEd25519: types.NewSignature(sig)}, nil
		}
		return MultiSignature{IsSr25519: true, AsSr25519: types.NewSignature(sig)}, nil
	case SchemeEcdsa:
		if len(sig) != 65 {
			return MultiSignature{}, fmt.Errorf("ecdsa signature must be 65 bytes, got %d", len(sig))
		}
		var s [65]byte
		copy(s[:], sig)
		return MultiSignature{IsEcdsa: true, AsEcdsa: s}, nil
	}
	return MultiSignature{}, fmt.Errorf("unknown signature scheme %d", scheme)
}

func (m MultiSignature) Encode(encoder scale.Encoder) (err error) {
	switch {
	case m.IsEd25519:
		err = encoder.PushByte(0)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsEd25519[:])
	case m.IsSr25519:
		err = encoder.PushByte(1)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsSr25519[:])
	case m.IsEcdsa:
		err = encoder.PushByte(2)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsEcdsa[:])
	default:
		err = fmt.Errorf("empty MultiSignature")
	}
	return
}

func (m *MultiSignature) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return decodeErr("signature variant", err)
	}
	var out MultiSignature
	switch b {
	case 0:
		out.IsEd25519 = true
		err = decoder.Read(out.AsEd25519[:])
	case 1:
		out.IsSr25519 = true
		err = decoder.Read(out.AsSr25519[:])
	case 2:
		out.IsEcdsa = true
		err = decoder.Read(out.AsEcdsa[:])
	default:
		return decodeErr("signature", fmt.Errorf("unknown MultiSignature variant %d", b))
	}
	if err != nil {
		return decodeErr("signature", err)
	}
	*m = out
	return nil
}

// ExtrinsicSignature is the block carried by signed extrinsics, in wire order.
type ExtrinsicSignature struct {
	Signer    MultiAddress
	Signature MultiSignature
	Extra     Extra // era, nonce, tip and delegated account
}

func (s ExtrinsicSignature) Encode(encoder scale.Encoder) error {
	err := s.Signer.Encode(encoder)
	if err != nil {
		return err
	}
	err = s.Signature.Encode(encoder)
	if err != nil {
		return err
	}
	return s.Extra.Encode(encoder)
}

func (s *ExtrinsicSignature) Decode(decoder scale.Decoder) error {
	var out ExtrinsicSignature
	err := out.Signer.Decode(decoder)
	if err != nil {
		return err
	}
	err = out.Signature.Decode(decoder)
	if err != nil {
		return err
	}
	err = out.Extra.Decode(decoder)
	if err != nil {
		return err
	}
	*s = out
	return nil
}
