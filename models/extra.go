package models

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// Era is the validity window of a transaction. Only the immortal era is
// implemented; mortal eras need the period/phase encoding, which is not
// provided here.
type Era byte

const EraImmortal Era = 0

func (e Era) IsImmortal() bool {
	return e == EraImmortal
}

func (e Era) Encode(encoder scale.Encoder) error {
	if !e.IsImmortal() {
		return ErrMortalEra
	}
	return encoder.PushByte(0)
}

func (e *Era) Decode(decoder scale.Decoder) error {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return decodeErr("era", err)
	}
	if b != 0 {
		return decodeErr("era", ErrMortalEra)
	}
	*e = EraImmortal
	return nil
}

// Extra is the signed-extension data sent with every signed extrinsic. The
// runtime decodes it positionally: era, compact nonce, compact tip, account.
// Account is always present and zero-filled when nothing is delegated.
type Extra struct {
	Era     Era
	Nonce   uint32
	Tip     *big.Int
	Account types.AccountID
}

// NewExtra returns an extra block with a zero tip and no delegated account.
func NewExtra(era Era, nonce uint32) Extra {
	return Extra{
		Era:   era,
		Nonce: nonce,
		Tip:   new(big.Int),
	}
}

// NewExtraWithAccount is NewExtra with the delegated account field set.
func NewExtraWithAccount(era Era, nonce uint32, account types.AccountID) Extra {
	e := NewExtra(era, nonce)
	e.Account = account
	return e
}

// HasAccount reports whether a delegated account is set.
func (e Extra) HasAccount() bool {
	return e.Account != types.AccountID{}
}

func (e Extra) tip() *big.Int {
	if e.Tip == nil {
		return new(big.Int)
	}
	return e.Tip
}

func (e Extra) Encode(encoder scale.Encoder) error {
	err := e.Era.Encode(encoder)
	if err != nil {
		return err
	}
	err = encodeCompact(encoder, uint64(e.Nonce))
	if err != nil {
		return err
	}
	tip := e.tip()
	if tip.Sign() < 0 || tip.BitLen() > 128 {
		return fmt.Errorf("tip %s does not fit u128", tip.String())
	}
	err = encoder.EncodeUintCompact(*tip)
	if err != nil {
		return err
	}
	return encoder.Write(e.Account[:])
}

func (e *Extra) Decode(decoder scale.Decoder) error {
	var out Extra
	err := out.Era.Decode(decoder)
	if err != nil {
		return err
	}
	out.Nonce, err = decodeCompactUint32(decoder)
	if err != nil {
		return decodeErr("nonce", err)
	}
	tip, err := decodeCompact(decoder)
	if err != nil {
		return decodeErr("tip", err)
	}
	if tip.BitLen() > 128 {
		return decodeErr("tip", fmt.Errorf("compact value overflows u128"))
	}
	out.Tip = tip
	err = decoder.Read(out.Account[:])
	if err != nil {
		return decodeErr("account", err)
	}
	*e = out
	return nil
}
