package handlers

import (
	"context"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

type BlsTransfer struct {
	Api *Api
}

func NewBlsTransfer(api *Api) *BlsTransfer {
	return &BlsTransfer{
		Api: api,
	}
}

// Transfer composes Balances.transfer of amount to who, an SS58 or hex account.
func (b *BlsTransfer) Transfer(ctx context.Context, who string, amount *big.Int) (models.Extrinsic, error) {
	call, err := b.call(who, amount)
	if err != nil {
		return models.Extrinsic{}, err
	}
	return b.Api.ComposeCall(ctx, call)
}

// TransferTo sends amount to who and waits until the transfer is in a block.
func (b *BlsTransfer) TransferTo(ctx context.Context, who string, amount uint64) (types.Hash, error) {
	call, err := b.call(who, new(big.Int).SetUint64(amount))
	if err != nil {
		return types.Hash{}, err
	}
	return b.Api.ComposeAndSubmit(ctx, call, XtInBlock)
}

func (b *BlsTransfer) call(who string, amount *big.Int) (models.Call, error) {
	to, err := models.ParseAccountID(who)
	if err != nil {
		return models.Call{}, err
	}
	return models.BalancesTransfer.Build(b.Api.Resolver(), models.TransferArgs{
		Dest:  models.NewMultiAddressFromAccountID(to[:]),
		Value: amount,
	})
}
