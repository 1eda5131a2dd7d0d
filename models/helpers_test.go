package models

import (
	"crypto/ed25519"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/require"
)

const (
	// RFC 8032 test 1
	testSeedHex   = "0x9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testPubHex    = "0xd75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	aliceHex      = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58     = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bobHex        = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	goldenCallHex = "0x090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"

	goldenSignedHex = "0xb5028400d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a00" +
		"a01fd56b05299b566c6346b6f1ca1fead0d9e049273619bf79274a4833c04c69db52bfa7ec2b6a3caa3114065e77e4d149c2644fdb26b8595d325f17dc7e2c0d" +
		"0008000000000000000000000000000000000000000000000000000000000000000000" +
		"090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"
	goldenUnsignedHex  = "0xa004090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"
	goldenDelegatedHex = "0xb5028400d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a00" +
		"dea3f04ebc4a388892b68d59e0808860044c9504927145db2dbba2656b0bf287f2af65d41d0fbfb3b6e7a67a789fe3243d473e93ae4ba7544c0837c618573602" +
		"000800" + "8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48" +
		"090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"
)

// ed25519Signer is a deterministic signer that remembers what it signed.
type ed25519Signer struct {
	key    ed25519.PrivateKey
	signed [][]byte
}

func newTestSigner(t *testing.T) *ed25519Signer {
	t.Helper()

	return &ed25519Signer{key: ed25519.NewKeyFromSeed(mustHex(t, testSeedHex))}
}

func (s *ed25519Signer) Sign(msg []byte) (MultiSignature, error) {
	s.signed = append(s.signed, append([]byte(nil), msg...))

	return NewMultiSignature(SchemeEd25519, ed25519.Sign(s.key, msg))
}

func (s *ed25519Signer) PublicKey() []byte {
	return s.key.Public().(ed25519.PublicKey)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := types.HexDecodeString(s)
	require.NoError(t, err)

	return b
}

func mustAccount(t *testing.T, s string) types.AccountID {
	t.Helper()

	return types.NewAccountID(mustHex(t, s))
}

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	s, err := NewSnapshot(
		ModuleCalls{Name: "System", Index: 0, Calls: []string{"fill_block", "remark"}},
		ModuleCalls{Name: "Timestamp", Index: 3, Calls: []string{"set"}},
		ModuleCalls{Name: "Balances", Index: 5, Calls: []string{"transfer", "set_balance"}},
		ModuleCalls{Name: "TemplateModule", Index: 9, Calls: []string{"do_something", "do_something0"}},
		ModuleCalls{Name: "Accounts", Index: 10, Calls: []string{"create_account"}},
	)
	require.NoError(t, err)

	return s
}

// goldenCall is TemplateModule.do_something(Alice, 1000).
func goldenCall(t *testing.T) Call {
	t.Helper()

	call, err := TemplateDoSomething.Build(testSnapshot(t), AddressAmountArgs{
		To:     NewMultiAddressFromAccountID(mustHex(t, aliceHex)),
		Amount: 1000,
	})
	require.NoError(t, err)

	return call
}

func goldenContext() ChainContext {
	return ChainContext{
		Nonce:              2,
		SpecVersion:        1,
		TransactionVersion: 1,
	}
}
