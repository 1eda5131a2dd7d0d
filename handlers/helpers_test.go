package handlers

import (
	"context"
	"crypto/ed25519"
	"errors"
	"sync"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/require"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

const (
	testSeedHex = "0x9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	aliceHex    = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58   = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	bobHex      = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"

	goldenSignedHex = "0xb5028400d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a00" +
		"a01fd56b05299b566c6346b6f1ca1fead0d9e049273619bf79274a4833c04c69db52bfa7ec2b6a3caa3114065e77e4d149c2644fdb26b8595d325f17dc7e2c0d" +
		"0008000000000000000000000000000000000000000000000000000000000000000000" +
		"090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"
	goldenUnsignedHex = "0xa004090000d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27de8030000"
)

type testSigner struct {
	key ed25519.PrivateKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()

	return &testSigner{key: ed25519.NewKeyFromSeed(mustHex(t, testSeedHex))}
}

func (s *testSigner) Sign(msg []byte) (models.MultiSignature, error) {
	return models.NewMultiSignature(models.SchemeEd25519, ed25519.Sign(s.key, msg))
}

func (s *testSigner) PublicKey() []byte {
	return s.key.Public().(ed25519.PublicKey)
}

type failingSigner struct {
	testSigner
}

var errSign = errors.New("hsm unavailable")

func (failingSigner) Sign([]byte) (models.MultiSignature, error) {
	return models.MultiSignature{}, errSign
}

// fakeChain hands out increasing nonces per account.
type fakeChain struct {
	mu     sync.Mutex
	base   models.ChainContext
	nonces map[types.AccountID]uint32
	asked  []types.AccountID
	err    error
}

func newFakeChain(base models.ChainContext) *fakeChain {
	return &fakeChain{base: base, nonces: map[types.AccountID]uint32{}}
}

func (c *fakeChain) ChainContext(_ context.Context, account types.AccountID) (models.ChainContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.asked = append(c.asked, account)
	if c.err != nil {
		return models.ChainContext{}, c.err
	}
	out := c.base
	out.Nonce = c.base.Nonce + c.nonces[account]
	return out, nil
}

// submitted bumps the nonce of the signer of xt, as the node would.
func (c *fakeChain) submitted(xt models.Extrinsic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := xt.Signature.Signer.AccountID(); ok {
		c.nonces[id]++
	}
}

type fakeSubmitter struct {
	mu    sync.Mutex
	chain *fakeChain
	sent  []string
	err   error
}

func (s *fakeSubmitter) record(xt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, xt)
	if s.chain != nil {
		decoded, err := models.DecodeExtrinsicHex(xt)
		if err != nil {
			return err
		}
		s.chain.submitted(decoded)
	}
	return nil
}

func (s *fakeSubmitter) Submit(_ context.Context, xt string) (types.Hash, error) {
	return types.Hash{1}, s.record(xt)
}

func (s *fakeSubmitter) SubmitAndWatch(_ context.Context, xt string, until XtStatus) (types.Hash, error) {
	if err := s.record(xt); err != nil {
		return types.Hash{}, err
	}
	if until == XtReady {
		return types.Hash{}, nil
	}
	return types.Hash{2}, nil
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

func testSnapshot(t *testing.T) *models.Snapshot {
	t.Helper()

	s, err := models.NewSnapshot(
		models.ModuleCalls{Name: "System", Index: 0, Calls: []string{"fill_block", "remark"}},
		models.ModuleCalls{Name: "Timestamp", Index: 3, Calls: []string{"set"}},
		models.ModuleCalls{Name: "Balances", Index: 5, Calls: []string{"transfer"}},
		models.ModuleCalls{Name: "TemplateModule", Index: 9, Calls: []string{"do_something", "do_something0"}},
		models.ModuleCalls{Name: "Accounts", Index: 10, Calls: []string{"create_account"}},
	)
	require.NoError(t, err)

	return s
}

func goldenContext() models.ChainContext {
	return models.ChainContext{
		Nonce:              2,
		SpecVersion:        1,
		TransactionVersion: 1,
	}
}
