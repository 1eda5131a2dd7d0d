package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/centrifuge/go-substrate-rpc-client/v2/client"
	"github.com/centrifuge/go-substrate-rpc-client/v2/config"
	gethrpc "github.com/centrifuge/go-substrate-rpc-client/v2/gethrpc"
	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

// XtStatus is the point in an extrinsic's life SubmitAndWatch waits for.
type XtStatus int

const (
	XtReady XtStatus = iota
	XtInBlock
	XtFinalized
)

func (s XtStatus) String() string {
	switch s {
	case XtReady:
		return "ready"
	case XtInBlock:
		return "inBlock"
	case XtFinalized:
		return "finalized"
	}
	return "unknown"
}

// Submitter hands hex-encoded extrinsics to a node.
type Submitter interface {
	// Submit returns the extrinsic hash once the node accepted it into its pool.
	Submit(ctx context.Context, xt string) (types.Hash, error)
	// SubmitAndWatch blocks until the extrinsic reaches until and returns the
	// block hash it was included in (zero for XtReady).
	SubmitAndWatch(ctx context.Context, xt string, until XtStatus) (types.Hash, error)
}

// ErrExtrinsicRejected is returned when the pool drops, invalidates or replaces an extrinsic.
var ErrExtrinsicRejected = errors.New("extrinsic rejected by the transaction pool")

// AuthorSubmitAndWatchExtrinsic subscribes to the status updates of xt, the
// 0x-prefixed hex encoding of an extrinsic.
func AuthorSubmitAndWatchExtrinsic(ctx context.Context, cli client.Client, xt string) (*ExtrinsicStatusSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, config.Default().SubscribeTimeout)
	defer cancel()

	c := make(chan types.ExtrinsicStatus)

	sub, err := cli.Subscribe(ctx, "author", "submitAndWatchExtrinsic", "unwatchExtrinsic", "extrinsicUpdate",
		c, xt)
	if err != nil {
		return nil, err
	}

	return &ExtrinsicStatusSubscription{Sub: sub, Channel: c}, nil
}

// ExtrinsicStatusSubscription is a subscription established through AuthorSubmitAndWatchExtrinsic.
type ExtrinsicStatusSubscription struct {
	Sub      *gethrpc.ClientSubscription
	Channel  chan types.ExtrinsicStatus
	QuitOnce sync.Once // ensures quit is closed once
}

// Chan returns the subscription channel.
//
// The channel is closed when Unsubscribe is called on the subscription.
func (s *ExtrinsicStatusSubscription) Chan() <-chan types.ExtrinsicStatus {
	return s.Channel
}

// Err returns the subscription error channel. The error channel receives a
// value when the subscription has ended due to an error.
func (s *ExtrinsicStatusSubscription) Err() <-chan error {
	return s.Sub.Err()
}

// Unsubscribe unsubscribes the notification and closes the error channel.
// It can safely be called more than once.
func (s *ExtrinsicStatusSubscription) Unsubscribe() {
	s.Sub.Unsubscribe()
	s.QuitOnce.Do(func() {
		close(s.Channel)
	})
}

func (c *RPCChain) Submit(ctx context.Context, xt string) (types.Hash, error) {
	var hash types.Hash
	if err := ctx.Err(); err != nil {
		return hash, err
	}
	err := c.api.Client.Call(&hash, "author_submitExtrinsic", xt)
	return hash, err
}

func (c *RPCChain) SubmitAndWatch(ctx context.Context, xt string, until XtStatus) (types.Hash, error) {
	sub, err := AuthorSubmitAndWatchExtrinsic(ctx, c.api.Client, xt)
	if err != nil {
		return types.Hash{}, err
	}
	defer sub.Unsubscribe()

	return waitForStatus(ctx, sub.Chan(), sub.Err(), until)
}

func waitForStatus(ctx context.Context, statuses <-chan types.ExtrinsicStatus, errs <-chan error, until XtStatus) (types.Hash, error) {
	for {
		select {
		case <-ctx.Done():
			return types.Hash{}, ctx.Err()
		case err := <-errs:
			if err == nil {
				err = errors.New("subscription closed")
			}
			return types.Hash{}, err
		case status, ok := <-statuses:
			if !ok {
				return types.Hash{}, errors.New("subscription closed")
			}
			switch {
			case status.IsDropped, status.IsInvalid, status.IsUsurped:
				return types.Hash{}, fmt.Errorf("%w: %s", ErrExtrinsicRejected, statusName(status))
			case status.IsFinalityTimeout:
				return types.Hash{}, errors.New("extrinsic finality timeout")
			case status.IsReady && until == XtReady:
				return types.Hash{}, nil
			case status.IsInBlock && until <= XtInBlock:
				return status.AsInBlock, nil
			case status.IsFinalized:
				return status.AsFinalized, nil
			}
		}
	}
}

func statusName(s types.ExtrinsicStatus) string {
	switch {
	case s.IsDropped:
		return "dropped"
	case s.IsInvalid:
		return "invalid"
	case s.IsUsurped:
		return "usurped"
	}
	return "unknown"
}
