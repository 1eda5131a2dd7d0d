package models

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/decred/base58"
	subkey "github.com/vedhavyas/go-subkey"
	"golang.org/x/crypto/blake2b"
)

// SubstrateNetwork is the generic substrate SS58 prefix.
const SubstrateNetwork uint8 = 42

func SS58Address(addr []byte, network uint8) (string, error) {
	return subkey.SS58Address(addr, network)
}

func SS58Addr(addr []byte) (out string) {
	out, _ = subkey.SS58Address(addr, SubstrateNetwork) // substrate
	return
}

var ss58Prefix = []byte("SS58PRE")

// DecodeSS58Address returns the 32-byte account id of a single-byte-prefix
// SS58 address after checking its checksum.
func DecodeSS58Address(ss58addr string) ([]byte, error) {
	decoded := base58.Decode(ss58addr)
	// prefix(1) + account(32) + checksum(2)
	if len(decoded) != 35 {
		return nil, fmt.Errorf("invalid ss58 address %q: decoded length %d", ss58addr, len(decoded))
	}
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	h.Write(ss58Prefix)
	h.Write(decoded[:33])
	sum := h.Sum(nil)
	if !bytes.Equal(sum[:2], decoded[33:]) {
		return nil, fmt.Errorf("invalid ss58 address %q: checksum mismatch", ss58addr)
	}
	return decoded[1:33], nil
}

// ParseAccountID accepts an SS58 address or a 0x-prefixed hex account id.
func ParseAccountID(s string) (types.AccountID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		b, err := types.HexDecodeString(s)
		if err != nil {
			return types.AccountID{}, err
		}
		if len(b) != 32 {
			return types.AccountID{}, fmt.Errorf("account id must be 32 bytes, got %d", len(b))
		}
		return types.NewAccountID(b), nil
	}
	b, err := DecodeSS58Address(s)
	if err != nil {
		return types.AccountID{}, err
	}
	return types.NewAccountID(b), nil
}
