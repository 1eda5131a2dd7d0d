package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/scale"
)

// maxDecodeLen caps length prefixes read from untrusted input.
const maxDecodeLen = 16 << 20

func encodeCompact(encoder scale.Encoder, v uint64) error {
	return encoder.EncodeUintCompact(*big.NewInt(0).SetUint64(v))
}

func encodeByteSlice(encoder scale.Encoder, b []byte) error {
	err := encodeCompact(encoder, uint64(len(b)))
	if err != nil {
		return err
	}
	return encoder.Write(b)
}

var errNonCanonicalCompact = errors.New("compact integer is not in its shortest form")

var compactBigModeMin = big.NewInt(1 << 30)

// decodeCompact reads a compact integer and rejects any value that is not in
// its shortest encoding, as the runtime does.
func decodeCompact(decoder scale.Decoder) (*big.Int, error) {
	b, err := decoder.ReadOneByte()
	if err != nil {
		return nil, err
	}
	switch b & 0x03 {
	case 0:
		return big.NewInt(int64(b >> 2)), nil
	case 1:
		hi, err := decoder.ReadOneByte()
		if err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint16([]byte{b, hi}) >> 2
		if v < 1<<6 {
			return nil, errNonCanonicalCompact
		}
		return big.NewInt(int64(v)), nil
	case 2:
		buf := []byte{b, 0, 0, 0}
		err = decoder.Read(buf[1:])
		if err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint32(buf) >> 2
		if v < 1<<14 {
			return nil, errNonCanonicalCompact
		}
		return big.NewInt(int64(v)), nil
	}

	// big-integer mode: the upper six bits hold the byte count minus 4
	n := int(b>>2) + 4
	le := make([]byte, n)
	err = decoder.Read(le)
	if err != nil {
		return nil, err
	}
	if le[n-1] == 0 {
		return nil, errNonCanonicalCompact
	}
	be := make([]byte, n)
	for i, x := range le {
		be[n-1-i] = x
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(compactBigModeMin) < 0 {
		return nil, errNonCanonicalCompact
	}
	return v, nil
}

func decodeCompactUint32(decoder scale.Decoder) (uint32, error) {
	v, err := decodeCompact(decoder)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() || v.Uint64() > math.MaxUint32 {
		return 0, fmt.Errorf("compact value %s overflows u32", v.String())
	}
	return uint32(v.Uint64()), nil
}

func decodeByteSlice(decoder scale.Decoder) ([]byte, error) {
	n, err := decodeCompact(decoder)
	if err != nil {
		return nil, err
	}
	if !n.IsUint64() || n.Uint64() > maxDecodeLen {
		return nil, fmt.Errorf("byte slice length %s exceeds limit", n.String())
	}
	out := make([]byte, n.Uint64())
	if len(out) == 0 {
		return out, nil
	}
	err = decoder.Read(out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompactLength returns the compact encoding of n, the form used for every
// length prefix on the wire.
func CompactLength(n uint64) ([]byte, error) {
	var bb bytes.Buffer
	err := encodeCompact(*scale.NewEncoder(&bb), n)
	if err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}
