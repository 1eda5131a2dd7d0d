package handlers

import (
	"context"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

type CreateAccountReq struct {
	AccountID       types.AccountID
	PubkeyAccountID types.AccountID
	// Owner is optional
	Owner *types.AccountID
}

// CreateAccount composes Accounts.create_account.
func (a *Api) CreateAccount(ctx context.Context, req CreateAccountReq) (models.Extrinsic, error) {
	args := models.CreateAccountArgs{
		AccountID:       req.AccountID,
		PubkeyAccountID: req.PubkeyAccountID,
	}
	if req.Owner != nil {
		args.Owner = models.NewOptionAccountID(*req.Owner)
	}
	return Compose(ctx, a, models.AccountsCreateAccount, args)
}
