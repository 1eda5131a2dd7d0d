package models

import (
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// ChainContext is the live chain state a signed extrinsic depends on.
// CurrentHash equals GenesisHash for immortal transactions.
type ChainContext struct {
	Nonce              uint32
	GenesisHash        types.Hash
	CurrentHash        types.Hash
	SpecVersion        uint32
	TransactionVersion uint32
}

// Additional returns the additional-signed tuple of ctx.
func (c ChainContext) Additional() AdditionalSigned {
	return AdditionalSigned{
		SpecVersion:        c.SpecVersion,
		TransactionVersion: c.TransactionVersion,
		GenesisHash:        c.GenesisHash,
		CurrentHash:        c.CurrentHash,
	}
}

// ComposeUnsigned wraps call in an unsigned extrinsic.
func ComposeUnsigned(call Call) Extrinsic {
	return NewExtrinsic(call)
}

// ComposeSigned signs call with signer and returns the signed extrinsic.
func ComposeSigned(signer Signer, call Call, ctx ChainContext, era Era) (Extrinsic, error) {
	return composeSigned(signer, call, ctx, NewExtra(era, ctx.Nonce))
}

// ComposeSignedFor is ComposeSigned with account written into the extra
// block, so signer authorizes a call that acts on account's state.
func ComposeSignedFor(signer Signer, call Call, ctx ChainContext, era Era, account types.AccountID) (Extrinsic, error) {
	return composeSigned(signer, call, ctx, NewExtraWithAccount(era, ctx.Nonce, account))
}

func composeSigned(signer Signer, call Call, ctx ChainContext, extra Extra) (Extrinsic, error) {
	if signer == nil {
		return Extrinsic{}, ErrNoSigner
	}
	ext := NewExtrinsic(call)
	err := ext.Sign(signer, extra, ctx.Additional())
	if err != nil {
		return Extrinsic{}, err
	}
	return ext, nil
}
