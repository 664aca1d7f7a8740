// Package bindings links noscrypt contexts to the native libnoscrypt library.
//
// The cgo implementation is only compiled with the noscrypt build tag
// (go build -tags noscrypt) and needs noscrypt.h and libnoscrypt on the
// include and linker paths. Every other build gets a stub whose constructor
// reports ErrNotBuilt, so the rest of the module compiles without cgo.
package bindings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary.
	ErrNotBuilt = errors.New("noscrypt/internal/bindings: native bindings not built")

	// ErrInvalidArgument reports a buffer the native library would reject
	// outright (nil state, wrong key size, oversized message).
	ErrInvalidArgument = errors.New("noscrypt/internal/bindings: invalid argument")
)

// NativeError carries the raw NCResult returned by a libnoscrypt call.
type NativeError struct {
	Func string
	Code int64
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("%s failed with code %d", e.Func, e.Code)
}

const (
	secretKeySize = 32
	publicKeySize = 32
	signatureSize = 64
	entropySize   = 32
)
