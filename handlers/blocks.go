package handlers

import (
	"context"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/hashicorp/go-hclog"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

// BlockReader fetches blocks by number.
type BlockReader interface {
	LatestNumber(ctx context.Context) (uint64, error)
	BlockHash(ctx context.Context, n uint64) (types.Hash, error)
	Block(ctx context.Context, hash types.Hash) (*models.SignedBlock, error)
}

// CallNamer maps a call index back to its names. *models.Snapshot is one.
type CallNamer interface {
	Name(index models.ModuleCallIndex) (module, call string, ok bool)
}

// ExtrinsicHandler receives every decoded extrinsic of a scanned block.
type ExtrinsicHandler interface {
	HandleExtrinsic(height uint64, module, call string, xt models.Extrinsic) error
}

type ExtrinsicHandlerFunc func(height uint64, module, call string, xt models.Extrinsic) error

func (f ExtrinsicHandlerFunc) HandleExtrinsic(height uint64, module, call string, xt models.Extrinsic) error {
	return f(height, module, call, xt)
}

// ScanBlocks hands every extrinsic of blocks from..to (inclusive) to h.
// Blocks holding nothing but the Timestamp.set inherent are skipped.
// Extrinsics that do not decode are logged and skipped.
func ScanBlocks(ctx context.Context, r BlockReader, names CallNamer, from, to uint64, h ExtrinsicHandler, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if from > to {
		return nil
	}
	for n := from; ; n++ {
		if err := scanBlock(ctx, r, names, n, h, logger); err != nil {
			return err
		}
		if n == to {
			return nil
		}
	}
}

func scanBlock(ctx context.Context, r BlockReader, names CallNamer, n uint64, h ExtrinsicHandler, logger hclog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hash, err := r.BlockHash(ctx, n)
	if err != nil {
		return err
	}
	block, err := r.Block(ctx, hash)
	if err != nil {
		return err
	}

	xts, errs := block.Block.DecodeExtrinsics()
	if len(xts) == 1 && errs[0] == nil {
		// ignore only timestamp.set
		if m, c, ok := names.Name(xts[0].Method.Index); ok && m == "Timestamp" && c == "set" {
			return nil
		}
	}
	for i, xt := range xts {
		if errs[i] != nil {
			logger.Warn("skipping undecodable extrinsic", "height", n, "index", i, "err", errs[i])
			continue
		}
		module, call, _ := names.Name(xt.Method.Index)
		if err := h.HandleExtrinsic(n, module, call, xt); err != nil {
			return err
		}
	}
	return nil
}

// WatchBlocks scans from the given height and keeps following the chain head,
// polling every interval, until ctx is cancelled.
func WatchBlocks(ctx context.Context, r BlockReader, names CallNamer, from uint64, interval time.Duration, h ExtrinsicHandler, logger hclog.Logger) error {
	curr := from
	for {
		last, err := r.LatestNumber(ctx)
		if err != nil {
			return err
		}
		if curr <= last {
			if err := ScanBlocks(ctx, r, names, curr, last, h, logger); err != nil {
				return err
			}
			curr = last + 1
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

func (c *RPCChain) LatestNumber(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	header, err := c.api.RPC.Chain.GetHeaderLatest()
	if err != nil {
		return 0, err
	}
	return uint64(header.Number), nil
}

func (c *RPCChain) BlockHash(ctx context.Context, n uint64) (types.Hash, error) {
	if err := ctx.Err(); err != nil {
		return types.Hash{}, err
	}
	return c.api.RPC.Chain.GetBlockHash(n)
}

func (c *RPCChain) Block(ctx context.Context, hash types.Hash) (*models.SignedBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var block models.SignedBlock
	err := client.CallWithBlockHash(c.api.Client, &block, "chain_getBlock", &hash)
	if err != nil {
		return nil, err
	}
	return &block, nil
}
