package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	envAddr     = "SKYVEIN_ADDR"
	envSeed     = "SKYVEIN_SEED"
	envNetwork  = "SKYVEIN_NETWORK"
	envScheme   = "SKYVEIN_SCHEME"
	envDelegate = "SKYVEIN_DELEGATE"
	envLogLevel = "SKYVEIN_LOG_LEVEL"
)

// Client holds everything needed to reach a node and sign for one account.
type Client struct {
	// Addr is the node's websocket endpoint, e.g. ws://localhost:9944
	Addr string
	// Seed is a mnemonic, hex seed or dev URI such as //Alice. Empty means unsigned.
	Seed string
	// Network is the SS58 prefix used when printing addresses.
	Network uint8
	// Scheme is sr25519 (default) or ed25519.
	Scheme string
	// Delegate, when set, is written into the extra block of every signed extrinsic.
	Delegate string
	LogLevel string
}

// LoadClient reads the given .env files, if any, then SKYVEIN_* variables.
// Variables already present in the environment win over file values.
func LoadClient(files ...string) (Client, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Client{}, fmt.Errorf("load env files: %w", err)
		}
	}

	c := Client{
		Addr:     os.Getenv(envAddr),
		Seed:     os.Getenv(envSeed),
		Network:  SubstrateNetwork,
		Scheme:   os.Getenv(envScheme),
		Delegate: os.Getenv(envDelegate),
		LogLevel: os.Getenv(envLogLevel),
	}
	if s := os.Getenv(envNetwork); s != "" {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return Client{}, fmt.Errorf("%s: %w", envNetwork, err)
		}
		c.Network = uint8(n)
	}
	return c, c.Validate()
}

// Validate reports every problem with c at once.
func (c Client) Validate() error {
	var errs *multierror.Error
	if c.Addr == "" {
		errs = multierror.Append(errs, errors.New("node address is empty"))
	} else if !strings.HasPrefix(c.Addr, "ws://") && !strings.HasPrefix(c.Addr, "wss://") &&
		!strings.HasPrefix(c.Addr, "http://") && !strings.HasPrefix(c.Addr, "https://") {
		errs = multierror.Append(errs, fmt.Errorf("node address %q has no ws/http scheme", c.Addr))
	}
	if scheme, err := ParseSignatureScheme(c.Scheme); err != nil {
		errs = multierror.Append(errs, err)
	} else if scheme == SchemeEcdsa && c.Seed != "" {
		errs = multierror.Append(errs, errors.New("no ecdsa signer is available for a seed"))
	}
	if c.Delegate != "" {
		if c.Seed == "" {
			errs = multierror.Append(errs, errors.New("delegate account set without a seed"))
		}
		if _, err := c.DelegateAccount(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("delegate: %w", err))
		}
	}
	return errs.ErrorOrNil()
}

// Signer builds the signer described by Seed and Scheme. It returns
// ErrNoSigner when no seed is configured.
func (c Client) Signer() (Signer, error) {
	if c.Seed == "" {
		return nil, ErrNoSigner
	}
	scheme, err := ParseSignatureScheme(c.Scheme)
	if err != nil {
		return nil, err
	}
	return NewSubkeySigner(scheme, c.Seed)
}

// DelegateAccount parses Delegate; the zero id means none is configured.
func (c Client) DelegateAccount() (types.AccountID, error) {
	if c.Delegate == "" {
		return types.AccountID{}, nil
	}
	return ParseAccountID(c.Delegate)
}
