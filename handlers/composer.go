package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skyvein-baas/client-skyvein-golang-xt/models"
)

// Api composes extrinsics against a live chain and, when a submitter is
// configured, sends them.
type Api struct {
	resolver models.Resolver
	chain    ChainReader
	signer   models.Signer
	delegate types.AccountID
	submit   Submitter

	network uint8
	logger  hclog.Logger
	metrics *Metrics

	// serializes nonce read and submission in ComposeAndSubmit
	mu sync.Mutex
}

type Option func(*Api)

// WithSigner makes the Api produce signed extrinsics.
func WithSigner(s models.Signer) Option {
	return func(a *Api) { a.signer = s }
}

// WithDelegate writes account into the extra block of every signed extrinsic.
func WithDelegate(account types.AccountID) Option {
	return func(a *Api) { a.delegate = account }
}

// WithNetwork sets the SS58 prefix used when logging addresses.
func WithNetwork(network uint8) Option {
	return func(a *Api) { a.network = network }
}

func WithSubmitter(s Submitter) Option {
	return func(a *Api) { a.submit = s }
}

func WithLogger(l hclog.Logger) Option {
	return func(a *Api) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(a *Api) { a.metrics = m }
}

func NewApi(resolver models.Resolver, chain ChainReader, opts ...Option) *Api {
	a := &Api{
		resolver: resolver,
		chain:    chain,
		network:  models.SubstrateNetwork,
		logger:   hclog.NewNullLogger(),
		metrics:  NilMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("composer")
	return a
}

// Connect dials cfg.Addr and returns an Api that reads chain state from and
// submits to that node. logger and reg may be nil.
func Connect(cfg models.Client, logger hclog.Logger, reg prometheus.Registerer) (*Api, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	chain, err := NewRPCChain(cfg.Addr)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithSubmitter(chain), WithLogger(logger), WithNetwork(cfg.Network)}
	if reg != nil {
		m, err := GetPrometheusMetrics(reg, "skyvein")
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMetrics(m))
	}
	if cfg.Seed != "" {
		signer, err := cfg.Signer()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSigner(signer))
	}
	delegate, err := cfg.DelegateAccount()
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithDelegate(delegate))

	return NewApi(chain.Resolver(), chain, opts...), nil
}

// Resolver is the name table the Api builds calls with.
func (a *Api) Resolver() models.Resolver {
	return a.resolver
}

// Signed reports whether the Api has a signer.
func (a *Api) Signed() bool {
	return a.signer != nil
}

// ComposeCall wraps call in an extrinsic: signed, and delegated if a delegate
// is configured, when the Api has a signer, unsigned otherwise.
func (a *Api) ComposeCall(ctx context.Context, call models.Call) (models.Extrinsic, error) {
	return a.compose(ctx, call, a.delegate)
}

// ComposeCallFor signs call on behalf of account. It needs a signer.
func (a *Api) ComposeCallFor(ctx context.Context, call models.Call, account types.AccountID) (models.Extrinsic, error) {
	if a.signer == nil {
		return models.Extrinsic{}, models.ErrNoSigner
	}
	return a.compose(ctx, call, account)
}

// ComposeByName resolves module.call and composes it with the given
// pre-encoded arguments.
func (a *Api) ComposeByName(ctx context.Context, module, call string, args ...[]byte) (models.Extrinsic, error) {
	idx, err := a.resolver.Resolve(module, call)
	if err != nil {
		return models.Extrinsic{}, err
	}
	return a.ComposeCall(ctx, models.NewCall(idx, args...))
}

// Compose builds def from args and composes it.
func Compose[A models.CallArgs](ctx context.Context, a *Api, def models.CallDef[A], args A) (models.Extrinsic, error) {
	call, err := def.Build(a.resolver, args)
	if err != nil {
		return models.Extrinsic{}, err
	}
	return a.ComposeCall(ctx, call)
}

// ComposeFor is Compose on behalf of account.
func ComposeFor[A models.CallArgs](ctx context.Context, a *Api, def models.CallDef[A], args A, account types.AccountID) (models.Extrinsic, error) {
	call, err := def.Build(a.resolver, args)
	if err != nil {
		return models.Extrinsic{}, err
	}
	return a.ComposeCallFor(ctx, call, account)
}

func (a *Api) compose(ctx context.Context, call models.Call, account types.AccountID) (models.Extrinsic, error) {
	if a.signer == nil {
		xt := models.ComposeUnsigned(call)
		a.metrics.Composed.WithLabelValues("false", "false").Inc()
		a.logger.Info("composed extrinsic", "call", call.Index, "signed", false)
		return xt, nil
	}

	signerID, err := models.AccountIDFromPublicKey(a.signer.PublicKey())
	if err != nil {
		return models.Extrinsic{}, err
	}
	cc, err := a.chain.ChainContext(ctx, signerID)
	if err != nil {
		return models.Extrinsic{}, fmt.Errorf("read chain context: %w", err)
	}

	extra := models.NewExtraWithAccount(models.EraImmortal, cc.Nonce, account)
	digested, err := models.SignedPayload{Call: call, Extra: extra, Additional: cc.Additional()}.Digested()
	if err != nil {
		return models.Extrinsic{}, err
	}
	if digested {
		a.metrics.Digested.Inc()
		a.logger.Debug("signing payload digest", "call", call.Index)
	}

	xt, err := models.ComposeSignedFor(a.signer, call, cc, models.EraImmortal, account)
	if err != nil {
		return models.Extrinsic{}, err
	}

	delegated := extra.HasAccount()
	a.metrics.Composed.WithLabelValues("true", boolLabel(delegated)).Inc()
	a.logger.Info("composed extrinsic",
		"call", call.Index,
		"signed", true,
		"signer", a.signerLabel(signerID),
		"nonce", cc.Nonce,
		"delegated", delegated,
	)
	return xt, nil
}

// signerLabel is the SS58 form of id, or its hex when the network prefix
// cannot be encoded.
func (a *Api) signerLabel(id types.AccountID) string {
	addr, err := models.SS58Address(id[:], a.network)
	if err != nil {
		a.logger.Warn("cannot encode signer address", "network", a.network, "err", err)
		return types.HexEncodeToString(id[:])
	}
	return addr
}

// Submit sends xt and returns its hash.
func (a *Api) Submit(ctx context.Context, xt models.Extrinsic) (types.Hash, error) {
	if a.submit == nil {
		return types.Hash{}, fmt.Errorf("no submitter configured")
	}
	enc, err := xt.HexEncode()
	if err != nil {
		return types.Hash{}, err
	}
	hash, err := a.submit.Submit(ctx, enc)
	a.countSubmit(err)
	return hash, err
}

// SubmitAndWatch sends xt and waits until it reaches until.
func (a *Api) SubmitAndWatch(ctx context.Context, xt models.Extrinsic, until XtStatus) (types.Hash, error) {
	if a.submit == nil {
		return types.Hash{}, fmt.Errorf("no submitter configured")
	}
	enc, err := xt.HexEncode()
	if err != nil {
		return types.Hash{}, err
	}
	hash, err := a.submit.SubmitAndWatch(ctx, enc, until)
	a.countSubmit(err)
	if err != nil {
		a.logger.Error("extrinsic failed", "xt", xt, "err", err)
		return hash, err
	}
	a.logger.Info("extrinsic reached status", "status", until, "block", hash.Hex())
	return hash, nil
}

// ComposeAndSubmit composes call and submits it, waiting for until. Calls on
// one Api are serialized so two extrinsics never read the same nonce.
func (a *Api) ComposeAndSubmit(ctx context.Context, call models.Call, until XtStatus) (types.Hash, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	xt, err := a.ComposeCall(ctx, call)
	if err != nil {
		return types.Hash{}, err
	}
	return a.SubmitAndWatch(ctx, xt, until)
}

func (a *Api) countSubmit(err error) {
	if err != nil {
		a.metrics.Submitted.WithLabelValues("error").Inc()
		return
	}
	a.metrics.Submitted.WithLabelValues("ok").Inc()
}
