package handlers

import (
	"context"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

// DoSomething composes TemplateModule.do_something(to, amount).
func (a *Api) DoSomething(ctx context.Context, to types.AccountID, amount uint32) (models.Extrinsic, error) {
	return Compose(ctx, a, models.TemplateDoSomething, models.AddressAmountArgs{
		To:     models.NewMultiAddressFromAccountID(to[:]),
		Amount: amount,
	})
}

// DoSomethingFor is DoSomething acting on account's state.
func (a *Api) DoSomethingFor(ctx context.Context, to types.AccountID, amount uint32, account types.AccountID) (models.Extrinsic, error) {
	return ComposeFor(ctx, a, models.TemplateDoSomething, models.AddressAmountArgs{
		To:     models.NewMultiAddressFromAccountID(to[:]),
		Amount: amount,
	}, account)
}

func (a *Api) DoSomething0(ctx context.Context, to types.AccountID) (models.Extrinsic, error) {
	return Compose(ctx, a, models.TemplateDoSomething0, models.AddressArgs{
		To: models.NewMultiAddressFromAccountID(to[:]),
	})
}
