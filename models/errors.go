package models

import (
	"errors"
	"fmt"
)

var (
	ErrMortalEra = errors.New("mortal era is not supported")
	ErrNoSigner  = errors.New("no signer configured")
)

// LookupError reports a module or call name missing from the metadata snapshot.
type LookupError struct {
	Module string
	Call   string
	// MissingModule is set when the module itself is absent.
	MissingModule bool
	// Err is the metadata library's own error, when there is one.
	Err error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lookup %s.%s: %v", e.Module, e.Call, e.Err)
	}
	if e.MissingModule {
		return fmt.Sprintf("module %q not found in metadata", e.Module)
	}
	return fmt.Sprintf("call %q not found in module %q", e.Call, e.Module)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// InvalidVersionError is returned when the low 7 bits of the version byte are not 4.
type InvalidVersionError struct {
	Version byte
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid transaction version: %d (raw byte %#02x)", e.Version&0x7f, e.Version)
}

// DecodeError wraps any failure met while decoding an extrinsic or one of its parts.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(field string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Field: field, Err: err}
}
