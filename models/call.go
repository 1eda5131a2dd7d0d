package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// ModuleCallIndex is the (module, call) index pair resolved from runtime metadata.
type ModuleCallIndex struct {
	Module uint8
	Call   uint8
}

func (i ModuleCallIndex) String() string {
	return fmt.Sprintf("%d.%d", i.Module, i.Call)
}

// Call is a resolved call index followed by its arguments, already SCALE encoded
// and concatenated in declaration order. The arguments are not checked against
// the runtime's call signature; a wrong order produces a call the node rejects.
type Call struct {
	Index ModuleCallIndex
	Args  []byte
}

// NewCall builds a Call from pre-encoded argument buffers, in the order given.
func NewCall(index ModuleCallIndex, args ...[]byte) Call {
	n := 0
	for _, a := range args {
		n += len(a)
	}
	buf := make([]byte, 0, n)
	for _, a := range args {
		buf = append(buf, a...)
	}
	return Call{Index: index, Args: buf}
}

// NewCallFromValues encodes every value with the SCALE codec and builds a Call.
func NewCallFromValues(index ModuleCallIndex, values ...interface{}) (Call, error) {
	args := make([][]byte, 0, len(values))
	for i, v := range values {
		bz, err := types.EncodeToBytes(v)
		if err != nil {
			return Call{}, fmt.Errorf("encode argument %d: %w", i, err)
		}
		args = append(args, bz)
	}
	return NewCall(index, args...), nil
}

func (c Call) Encode(encoder scale.Encoder) error {
	err := encoder.PushByte(c.Index.Module)
	if err != nil {
		return err
	}
	err = encoder.PushByte(c.Index.Call)
	if err != nil {
		return err
	}
	return encoder.Write(c.Args)
}

// Bytes returns the call encoding: module index, call index, arguments.
func (c Call) Bytes() []byte {
	out := make([]byte, 0, 2+len(c.Args))
	out = append(out, c.Index.Module, c.Index.Call)
	return append(out, c.Args...)
}

// DecodeCall reads a call occupying all of bz. Arguments are kept opaque.
func DecodeCall(bz []byte) (Call, error) {
	if len(bz) < 2 {
		return Call{}, decodeErr("call", errors.New("call index truncated"))
	}
	args := make([]byte, len(bz)-2)
	copy(args, bz[2:])
	return Call{
		Index: ModuleCallIndex{Module: bz[0], Call: bz[1]},
		Args:  args,
	}, nil
}

// Equal reports whether both calls have the same index and argument bytes.
func (c Call) Equal(o Call) bool {
	return c.Index == o.Index && bytes.Equal(c.Args, o.Args)
}
