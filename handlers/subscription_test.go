package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(statuses ...types.ExtrinsicStatus) <-chan types.ExtrinsicStatus {
	c := make(chan types.ExtrinsicStatus, len(statuses))
	for _, s := range statuses {
		c <- s
	}
	return c
}

func TestWaitForStatus(t *testing.T) {
	ready := types.ExtrinsicStatus{IsReady: true}
	inBlock := types.ExtrinsicStatus{IsInBlock: true, AsInBlock: types.Hash{3}}
	finalized := types.ExtrinsicStatus{IsFinalized: true, AsFinalized: types.Hash{4}}

	cases := []struct {
		name     string
		statuses []types.ExtrinsicStatus
		until    XtStatus
		want     types.Hash
	}{
		{"ready", []types.ExtrinsicStatus{ready}, XtReady, types.Hash{}},
		{"in block", []types.ExtrinsicStatus{ready, inBlock}, XtInBlock, types.Hash{3}},
		{"ready waits for block", []types.ExtrinsicStatus{inBlock}, XtReady, types.Hash{3}},
		{"finalized", []types.ExtrinsicStatus{ready, inBlock, finalized}, XtFinalized, types.Hash{4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := waitForStatus(context.Background(), feed(c.statuses...), nil, c.until)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestWaitForStatus_Rejected(t *testing.T) {
	for _, s := range []types.ExtrinsicStatus{{IsDropped: true}, {IsInvalid: true}, {IsUsurped: true}} {
		_, err := waitForStatus(context.Background(), feed(types.ExtrinsicStatus{IsReady: true}, s), nil, XtInBlock)
		assert.ErrorIs(t, err, ErrExtrinsicRejected)
	}
}

func TestWaitForStatus_Ends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := waitForStatus(ctx, make(chan types.ExtrinsicStatus), nil, XtInBlock)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	errs := make(chan error, 1)
	errs <- errors.New("connection reset")
	_, err = waitForStatus(context.Background(), make(chan types.ExtrinsicStatus), errs, XtInBlock)
	assert.EqualError(t, err, "connection reset")

	closed := make(chan types.ExtrinsicStatus)
	close(closed)
	_, err = waitForStatus(context.Background(), closed, nil, XtInBlock)
	assert.Error(t, err)
}

func TestXtStatus_String(t *testing.T) {
	assert.Equal(t, "inBlock", XtInBlock.String())
	assert.Equal(t, "unknown", XtStatus(9).String())
}
