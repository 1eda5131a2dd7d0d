package models

import (
	"math/big"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCall_ConcatenatesArgsInOrder(t *testing.T) {
	c := NewCall(ModuleCallIndex{Module: 7, Call: 3}, []byte{1, 2}, nil, []byte{3})

	assert.Equal(t, []byte{7, 3, 1, 2, 3}, c.Bytes())

	bz, err := types.EncodeToBytes(c)
	require.NoError(t, err)
	assert.Equal(t, c.Bytes(), bz)
}

func TestNewCall_NoArgs(t *testing.T) {
	c := NewCall(ModuleCallIndex{Module: 1, Call: 2})

	assert.NotNil(t, c.Args)
	assert.Equal(t, []byte{1, 2}, c.Bytes())
}

func TestDecodeCall(t *testing.T) {
	c, err := DecodeCall([]byte{9, 0, 0xaa})
	require.NoError(t, err)
	assert.True(t, c.Equal(NewCall(ModuleCallIndex{Module: 9}, []byte{0xaa})))

	_, err = DecodeCall([]byte{9})
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestCallDef_GoldenCall(t *testing.T) {
	assert.Equal(t, mustHex(t, goldenCallHex), goldenCall(t).Bytes())
	assert.Equal(t, "TemplateModule.do_something", TemplateDoSomething.String())
}

func TestCallDef_UnknownCall(t *testing.T) {
	_, err := CallDef[AddressArgs]{Module: "TemplateModule", Call: "missing"}.Build(testSnapshot(t), AddressArgs{})

	var le *LookupError
	require.ErrorAs(t, err, &le)
	assert.False(t, le.MissingModule)
}

func TestCallDef_Shapes(t *testing.T) {
	s := testSnapshot(t)
	alice := mustAccount(t, aliceHex)
	bob := mustAccount(t, bobHex)

	t.Run("remark", func(t *testing.T) {
		c, err := SystemRemark.Build(s, RemarkArgs{Remark: []byte("hi")})
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 1, 0x08, 'h', 'i'}, c.Bytes())
	})

	t.Run("do_something0", func(t *testing.T) {
		c, err := TemplateDoSomething0.Build(s, AddressArgs{To: NewMultiAddressFromAccountID(alice[:])})
		require.NoError(t, err)
		assert.Equal(t, ModuleCallIndex{Module: 9, Call: 1}, c.Index)
		assert.Equal(t, append([]byte{0}, alice[:]...), c.Args)
	})

	t.Run("create_account", func(t *testing.T) {
		c, err := AccountsCreateAccount.Build(s, CreateAccountArgs{
			AccountID:       alice,
			PubkeyAccountID: bob,
			Owner:           NewOptionAccountID(alice),
		})
		require.NoError(t, err)

		want := append(append(append([]byte{}, alice[:]...), bob[:]...), 1)
		want = append(want, alice[:]...)
		assert.Equal(t, want, c.Args)

		c, err = AccountsCreateAccount.Build(s, CreateAccountArgs{AccountID: alice, PubkeyAccountID: bob})
		require.NoError(t, err)
		assert.Len(t, c.Args, 65)
		assert.Equal(t, byte(0), c.Args[64])
	})

	t.Run("transfer", func(t *testing.T) {
		c, err := BalancesTransfer.Build(s, TransferArgs{
			Dest:  NewMultiAddressFromAccountID(alice[:]),
			Value: big.NewInt(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, append(append([]byte{0}, alice[:]...), 0xa1, 0x0f), c.Args)

		tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
		_, err = BalancesTransfer.Build(s, TransferArgs{Dest: NewMultiAddressFromAccountID(alice[:]), Value: tooBig})
		assert.Error(t, err)
	})

	t.Run("timestamp", func(t *testing.T) {
		c, err := TimestampSet.Build(s, MomentArgs{Now: NewCompactMoment(time.Unix(0, 1000*int64(time.Millisecond)))})
		require.NoError(t, err)
		assert.Equal(t, []byte{3, 0, 0xa1, 0x0f}, c.Bytes())
	})
}

func TestOptionAccountID_Decode(t *testing.T) {
	alice := mustAccount(t, aliceHex)

	var o OptionAccountID
	require.NoError(t, types.DecodeFromBytes(append([]byte{1}, alice[:]...), &o))
	assert.Equal(t, NewOptionAccountID(alice), o)

	require.NoError(t, types.DecodeFromBytes([]byte{0}, &o))
	assert.False(t, o.HasValue)

	assert.Error(t, types.DecodeFromBytes([]byte{2}, &o))
}

func TestCompactMoment(t *testing.T) {
	now := time.Date(2021, 3, 1, 12, 0, 0, 123456789, time.UTC)
	m := NewCompactMoment(now)
	assert.Equal(t, uint64(now.UnixNano()/NanosInMilli), m.Millis())

	bz, err := types.EncodeToBytes(m)
	require.NoError(t, err)

	var got CompactMoment
	require.NoError(t, types.DecodeFromBytes(bz, &got))
	assert.True(t, m.Equal(got.Time))

	_, err = types.EncodeToBytes(NewCompactMoment(time.Unix(-1, 0)))
	assert.Error(t, err)
}
