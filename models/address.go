package models

import (
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// MultiAddress is the runtime's generic address. The Id variant wraps a
// 32-byte account id and is what signers and the template calls use.
type MultiAddress struct {
	IsID        bool
	AsID        types.AccountID
	IsRaw       bool
	AsRaw       []byte
	IsAddress32 bool
	AsAddress32 [32]byte
	IsAddress20 bool
	AsAddress20 [20]byte
}

// NewMultiAddressFromAccountID wraps a 32-byte account id in the Id variant.
func NewMultiAddressFromAccountID(b []byte) MultiAddress {
	return MultiAddress{
		IsID: true,
		AsID: types.NewAccountID(b),
	}
}

// NewMultiAddressFromHexAccountID parses a 0x-prefixed hex account id.
func NewMultiAddressFromHexAccountID(str string) (MultiAddress, error) {
	b, err := types.HexDecodeString(str)
	if err != nil {
		return MultiAddress{}, err
	}
	if len(b) != 32 {
		return MultiAddress{}, fmt.Errorf("account id must be 32 bytes, got %d", len(b))
	}
	return NewMultiAddressFromAccountID(b), nil
}

func (m MultiAddress) Encode(encoder scale.Encoder) (err error) {
	switch {
	case m.IsID:
		err = encoder.PushByte(0)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsID[:])
	case m.IsRaw:
		err = encoder.PushByte(2)
		if err != nil {
			return
		}
		err = encodeByteSlice(encoder, m.AsRaw)
	case m.IsAddress32:
		err = encoder.PushByte(3)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsAddress32[:])
	case m.IsAddress20:
		err = encoder.PushByte(4)
		if err != nil {
			return
		}
		err = encoder.Write(m.AsAddress20[:])
	default:
		err = fmt.Errorf("empty MultiAddress")
	}
	return
}

func (m *MultiAddress) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return decodeErr("address variant", err)
	}
	var out MultiAddress
	switch b {
	case 0:
		out.IsID = true
		err = decoder.Read(out.AsID[:])
	case 2:
		out.IsRaw = true
		out.AsRaw, err = decodeByteSlice(decoder)
	case 3:
		out.IsAddress32 = true
		err = decoder.Read(out.AsAddress32[:])
	case 4:
		out.IsAddress20 = true
		err = decoder.Read(out.AsAddress20[:])
	default:
		return decodeErr("address", fmt.Errorf("unsupported MultiAddress variant %d", b))
	}
	if err != nil {
		return decodeErr("address", err)
	}
	*m = out
	return nil
}

// AccountID returns the wrapped 32-byte id for the Id and Address32 variants.
func (m MultiAddress) AccountID() (types.AccountID, bool) {
	switch {
	case m.IsID:
		return m.AsID, true
	case m.IsAddress32:
		return types.AccountID(m.AsAddress32), true
	}
	return types.AccountID{}, false
}

func (m MultiAddress) String() string {
	if id, ok := m.AccountID(); ok {
		return SS58Addr(id[:])
	}
	switch {
	case m.IsRaw:
		return types.HexEncodeToString(m.AsRaw)
	case m.IsAddress20:
		return types.HexEncodeToString(m.AsAddress20[:])
	}
	return "<empty>"
}
