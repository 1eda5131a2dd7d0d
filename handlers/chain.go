package handlers

import (
	"context"
	"errors"
	"fmt"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v2"
	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

var ErrAccountNotFound = errors.New("account not exist")

// ChainReader supplies the live state a signed extrinsic is built against.
type ChainReader interface {
	// ChainContext returns the nonce of account together with the genesis
	// hash and runtime versions.
	ChainContext(ctx context.Context, account types.AccountID) (models.ChainContext, error)
}

// RPCChain reads chain state from a node over its RPC endpoint.
type RPCChain struct {
	api  *gsrpc.SubstrateAPI
	meta *types.Metadata
}

func NewRPCChain(addr string) (*RPCChain, error) {
	api, err := gsrpc.NewSubstrateAPI(addr)
	if err != nil {
		return nil, err
	}
	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return &RPCChain{api: api, meta: meta}, nil
}

// Client is the underlying RPC client.
func (c *RPCChain) Client() client.Client {
	return c.api.Client
}

// Metadata is the metadata fetched when the chain was connected.
func (c *RPCChain) Metadata() *types.Metadata {
	return c.meta
}

// Resolver returns a name table over the connected runtime's metadata.
func (c *RPCChain) Resolver() models.Resolver {
	if s, err := models.NewSnapshotFromMetadata(c.meta); err == nil {
		return s
	}
	return models.MetadataResolver{Meta: c.meta}
}

func (c *RPCChain) ChainContext(ctx context.Context, account types.AccountID) (models.ChainContext, error) {
	if err := ctx.Err(); err != nil {
		return models.ChainContext{}, err
	}
	genesisHash, err := c.api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return models.ChainContext{}, fmt.Errorf("get genesis hash: %w", err)
	}

	rv, err := c.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return models.ChainContext{}, fmt.Errorf("get runtime version: %w", err)
	}

	nonce, err := c.Nonce(ctx, account)
	if err != nil {
		return models.ChainContext{}, err
	}

	return models.ChainContext{
		Nonce:              nonce,
		GenesisHash:        genesisHash,
		CurrentHash:        genesisHash,
		SpecVersion:        uint32(rv.SpecVersion),
		TransactionVersion: uint32(rv.TransactionVersion),
	}, nil
}

// Nonce reads System.Account of account.
func (c *RPCChain) Nonce(ctx context.Context, account types.AccountID) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key, err := types.CreateStorageKey(c.meta, "System", "Account", account[:], nil)
	if err != nil {
		return 0, err
	}

	var accountInfo types.AccountInfo
	ok, err := c.api.RPC.State.GetStorageLatest(key, &accountInfo)
	if err != nil {
		return 0, fmt.Errorf("get account info: %w", err)
	} else if !ok {
		return 0, ErrAccountNotFound
	}
	return uint32(accountInfo.Nonce), nil
}
