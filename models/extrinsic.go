package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

type Extrinsic struct {
	// Version is the encoded version flag (which encodes the raw transaction version and signing information in one byte)
	Version byte
	// Signature is only meaningful when the signed bit of Version is set
	Signature ExtrinsicSignature
	// Method is the call this extrinsic wraps
	Method Call
}

// NewExtrinsic creates a new unsigned Extrinsic from the provided Call
func NewExtrinsic(c Call) Extrinsic {
	return Extrinsic{
		Version: types.ExtrinsicVersion4,
		Method:  c,
	}
}

// NewSignedExtrinsic creates a signed Extrinsic from its parts
func NewSignedExtrinsic(c Call, signer MultiAddress, sig MultiSignature, extra Extra) Extrinsic {
	return Extrinsic{
		Version: types.ExtrinsicVersion4 | types.ExtrinsicBitSigned,
		Signature: ExtrinsicSignature{
			Signer:    signer,
			Signature: sig,
			Extra:     extra,
		},
		Method: c,
	}
}

// IsSigned returns true if the extrinsic is signed
func (e Extrinsic) IsSigned() bool {
	return e.Version&types.ExtrinsicBitSigned == types.ExtrinsicBitSigned
}

// Type returns the raw transaction version (not flagged with signing information)
func (e Extrinsic) Type() uint8 {
	return e.Version & types.ExtrinsicUnmaskVersion
}

// Sign signs the payload built from the call, extra and additional data and
// marks the extrinsic as signed.
func (e *Extrinsic) Sign(signer Signer, extra Extra, additional AdditionalSigned) error {
	if e.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v (isSigned: %v, type: %v)", e.Version, e.IsSigned(), e.Type())
	}

	payload := SignedPayload{
		Call:       e.Method,
		Extra:      extra,
		Additional: additional,
	}
	sig, err := payload.Sign(signer)
	if err != nil {
		return err
	}

	addr, err := SignerAddress(signer)
	if err != nil {
		return err
	}

	e.Signature = ExtrinsicSignature{
		Signer:    addr,
		Signature: sig,
		Extra:     extra,
	}

	// mark the extrinsic as signed
	e.Version |= types.ExtrinsicBitSigned

	return nil
}

func (e Extrinsic) Encode(encoder scale.Encoder) error {
	if e.Type() != types.ExtrinsicVersion4 {
		return fmt.Errorf("unsupported extrinsic version: %v (isSigned: %v, type: %v)", e.Version, e.IsSigned(),
			e.Type())
	}

	// create a temporary buffer that will receive the plain encoded transaction (version, signature (optional),
	// method/call)
	var bb = bytes.Buffer{}
	tempEnc := scale.NewEncoder(&bb)

	// encode the version of the extrinsic
	err := tempEnc.PushByte(e.Version)
	if err != nil {
		return err
	}

	// encode the signature if signed
	if e.IsSigned() {
		err = e.Signature.Encode(*tempEnc)
		if err != nil {
			return err
		}
	}

	// encode the method
	err = e.Method.Encode(*tempEnc)
	if err != nil {
		return err
	}

	// take the temporary buffer to determine length, write that as prefix
	eb := bb.Bytes()
	err = encodeCompact(encoder, uint64(len(eb)))
	if err != nil {
		return err
	}

	// write the actual encoded transaction
	return encoder.Write(eb)
}

// Decode reads a length-prefixed extrinsic. The prefix bounds the body; the
// call takes whatever the body holds after the signature block.
func (e *Extrinsic) Decode(decoder scale.Decoder) error {
	// compact length encoding (1, 2, or 4 bytes)
	n, err := decodeCompact(decoder)
	if err != nil {
		return decodeErr("length prefix", err)
	}
	if !n.IsUint64() || n.Uint64() > maxDecodeLen {
		return decodeErr("length prefix", fmt.Errorf("length %s exceeds limit", n.String()))
	}
	if n.Uint64() == 0 {
		return decodeErr("version", fmt.Errorf("empty extrinsic"))
	}
	body := make([]byte, n.Uint64())
	err = decoder.Read(body)
	if err != nil {
		return decodeErr("body", err)
	}

	var out Extrinsic

	// version, signature bitmask (1 byte)
	out.Version = body[0]
	if out.Type() != types.ExtrinsicVersion4 {
		return decodeErr("version", &InvalidVersionError{Version: out.Version})
	}

	rest := body[1:]
	if out.IsSigned() {
		r := bytes.NewReader(rest)
		err = out.Signature.Decode(*scale.NewDecoder(r))
		if err != nil {
			return decodeErr("signature", err)
		}
		rest = rest[len(rest)-r.Len():]
	}

	out.Method, err = DecodeCall(rest)
	if err != nil {
		return err
	}

	*e = out
	return nil
}

// DecodeExtrinsic decodes a length-prefixed extrinsic from bz.
func DecodeExtrinsic(bz []byte) (Extrinsic, error) {
	var e Extrinsic
	err := e.Decode(*scale.NewDecoder(bytes.NewReader(bz)))
	if err != nil {
		return Extrinsic{}, err
	}
	return e, nil
}

// DecodeExtrinsicHex decodes the 0x-prefixed hex transport form.
func DecodeExtrinsicHex(s string) (Extrinsic, error) {
	bz, err := types.HexDecodeString(s)
	if err != nil {
		return Extrinsic{}, decodeErr("hex", err)
	}
	return DecodeExtrinsic(bz)
}

// Bytes returns the full wire encoding, length prefix included.
func (e Extrinsic) Bytes() ([]byte, error) {
	return types.EncodeToBytes(e)
}

// HexEncode returns the form handed to author_submitExtrinsic: 0x followed by
// lowercase hex.
func (e Extrinsic) HexEncode() (string, error) {
	bz, err := e.Bytes()
	if err != nil {
		return "", err
	}
	return types.HexEncodeToString(bz), nil
}

// UnmarshalJSON fills Extrinsic with the JSON encoded byte array given by bz
func (e *Extrinsic) UnmarshalJSON(bz []byte) error {
	var tmp string
	if err := json.Unmarshal(bz, &tmp); err != nil {
		return err
	}

	dec, err := types.HexDecodeString(tmp)
	if err != nil {
		return err
	}

	// determine whether length prefix is there, some nodes omit it
	if hasLengthPrefix(dec) {
		out, err := DecodeExtrinsic(dec)
		if err != nil {
			return err
		}
		*e = out
		return nil
	}

	// not there, prepend with compact encoded length prefix
	prefix, err := CompactLength(uint64(len(dec)))
	if err != nil {
		return err
	}
	out, err := DecodeExtrinsic(append(prefix, dec...))
	if err != nil {
		return err
	}
	*e = out
	return nil
}

func hasLengthPrefix(bz []byte) bool {
	r := bytes.NewReader(bz)
	n, err := decodeCompact(*scale.NewDecoder(r))
	if err != nil || !n.IsUint64() {
		return false
	}
	return n.Uint64() == uint64(r.Len())
}

// MarshalJSON returns a JSON encoded byte array of Extrinsic
func (e Extrinsic) MarshalJSON() ([]byte, error) {
	s, err := e.HexEncode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func (e Extrinsic) String() string {
	if !e.IsSigned() {
		return fmt.Sprintf("Extrinsic(unsigned, call %s, args %s)", e.Method.Index, types.HexEncodeToString(e.Method.Args))
	}
	x := e.Signature.Extra
	return fmt.Sprintf("Extrinsic(signer %s, nonce %d, call %s, args %s), account:%x",
		e.Signature.Signer, x.Nonce, e.Method.Index, types.HexEncodeToString(e.Method.Args), x.Account[:])
}
