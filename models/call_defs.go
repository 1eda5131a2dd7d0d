package models

import (
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// CallArgs is implemented by the argument tuples below and nothing else.
type CallArgs interface {
	EncodeArgs() ([][]byte, error)
	callArgs()
}

// CallDef binds a dispatchable's name to the shape of its arguments.
type CallDef[A CallArgs] struct {
	Module string
	Call   string
}

func (d CallDef[A]) String() string {
	return d.Module + "." + d.Call
}

// Build resolves the call index and encodes args after it.
func (d CallDef[A]) Build(r Resolver, args A) (Call, error) {
	idx, err := r.Resolve(d.Module, d.Call)
	if err != nil {
		return Call{}, err
	}
	bufs, err := args.EncodeArgs()
	if err != nil {
		return Call{}, fmt.Errorf("encode %s arguments: %w", d, err)
	}
	return NewCall(idx, bufs...), nil
}

var (
	TemplateDoSomething   = CallDef[AddressAmountArgs]{Module: "TemplateModule", Call: "do_something"}
	TemplateDoSomething0  = CallDef[AddressArgs]{Module: "TemplateModule", Call: "do_something0"}
	SystemRemark          = CallDef[RemarkArgs]{Module: "System", Call: "remark"}
	AccountsCreateAccount = CallDef[CreateAccountArgs]{Module: "Accounts", Call: "create_account"}
	BalancesTransfer      = CallDef[TransferArgs]{Module: "Balances", Call: "transfer"}
	TimestampSet          = CallDef[MomentArgs]{Module: "Timestamp", Call: "set"}
)

func encodeEach(values ...interface{}) ([][]byte, error) {
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		bz, err := types.EncodeToBytes(v)
		if err != nil {
			return nil, err
		}
		out = append(out, bz)
	}
	return out, nil
}

// AddressArgs is (to: MultiAddress).
type AddressArgs struct {
	To MultiAddress
}

func (a AddressArgs) EncodeArgs() ([][]byte, error) {
	return encodeEach(a.To)
}

func (AddressArgs) callArgs() {}

// AddressAmountArgs is (to: MultiAddress, amount: u32).
type AddressAmountArgs struct {
	To     MultiAddress
	Amount uint32
}

func (a AddressAmountArgs) EncodeArgs() ([][]byte, error) {
	return encodeEach(a.To, a.Amount)
}

func (AddressAmountArgs) callArgs() {}

// RemarkArgs is (remark: Vec<u8>).
type RemarkArgs struct {
	Remark []byte
}

func (a RemarkArgs) EncodeArgs() ([][]byte, error) {
	return encodeEach(byteVec(a.Remark))
}

func (RemarkArgs) callArgs() {}

// CreateAccountArgs is (account_id: [u8; 32], pubkey_account_id: [u8; 32],
// owner_pubkey_account_id: Option<[u8; 32]>).
type CreateAccountArgs struct {
	AccountID       types.AccountID
	PubkeyAccountID types.AccountID
	Owner           OptionAccountID
}

func (a CreateAccountArgs) EncodeArgs() ([][]byte, error) {
	return encodeEach(rawAccount(a.AccountID), rawAccount(a.PubkeyAccountID), a.Owner)
}

func (CreateAccountArgs) callArgs() {}

// TransferArgs is (dest: MultiAddress, value: Compact<u128>).
type TransferArgs struct {
	Dest  MultiAddress
	Value *big.Int
}

func (a TransferArgs) EncodeArgs() ([][]byte, error) {
	v := a.Value
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return nil, fmt.Errorf("transfer value %s does not fit u128", v.String())
	}
	return encodeEach(a.Dest, compactBig{v})
}

func (TransferArgs) callArgs() {}

// MomentArgs is (now: Compact<Moment>).
type MomentArgs struct {
	Now CompactMoment
}

func (a MomentArgs) EncodeArgs() ([][]byte, error) {
	return encodeEach(a.Now)
}

func (MomentArgs) callArgs() {}

type rawAccount types.AccountID

func (a rawAccount) Encode(encoder scale.Encoder) error {
	return encoder.Write(a[:])
}

type byteVec []byte

func (b byteVec) Encode(encoder scale.Encoder) error {
	return encodeByteSlice(encoder, b)
}

type compactBig struct {
	v *big.Int
}

func (c compactBig) Encode(encoder scale.Encoder) error {
	return encoder.EncodeUintCompact(*c.v)
}

// OptionAccountID is Option<[u8; 32]>.
type OptionAccountID struct {
	HasValue bool
	Value    types.AccountID
}

func NewOptionAccountID(id types.AccountID) OptionAccountID {
	return OptionAccountID{HasValue: true, Value: id}
}

func (m OptionAccountID) Encode(encoder scale.Encoder) (err error) {
	if !m.HasValue {
		return encoder.PushByte(0)
	}
	err = encoder.PushByte(1)
	if err != nil {
		return
	}
	return encoder.Write(m.Value[:])
}

func (m *OptionAccountID) Decode(decoder scale.Decoder) (err error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return
	}
	switch b {
	case 0:
		*m = OptionAccountID{}
	case 1:
		var v types.AccountID
		err = decoder.Read(v[:])
		if err != nil {
			return
		}
		*m = OptionAccountID{HasValue: true, Value: v}
	default:
		return fmt.Errorf("unknown byte prefix for encoded OptionAccountID: %d", b)
	}
	return
}
