package noscrypt

import (
	"errors"
	"fmt"

	"github.com/nostrkit/noscrypt-go/internal/bindings"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/hexcodec"
)

// Input errors. These are returned before any engine call is made.
var (
	// ErrInvalidEncoding reports hex text containing non-hex characters.
	ErrInvalidEncoding = hexcodec.ErrInvalidEncoding

	// ErrInvalidLength reports hex text with an odd number of digits.
	ErrInvalidLength = hexcodec.ErrInvalidLength

	// ErrInvalidKeyLength reports a key that does not decode to 32 bytes.
	ErrInvalidKeyLength = errors.New("noscrypt: key must be 32 bytes hex encoded")

	// ErrInvalidSignatureLength reports a signature that does not decode to
	// 64 bytes.
	ErrInvalidSignatureLength = errors.New("noscrypt: signature must be 64 bytes hex encoded")
)

// Lifecycle errors. A context that reports one of these must be discarded.
var (
	ErrContextInitFailed    = errors.New("noscrypt: failed to init context")
	ErrContextDestroyFailed = errors.New("noscrypt: failed to destroy context")

	// ErrInvalidState reports an operation on a closed context.
	ErrInvalidState = errors.New("noscrypt: cannot perform operations on a closed context")

	// ErrEntropyUnavailable reports a failed read from the entropy source.
	ErrEntropyUnavailable = errors.New("noscrypt: entropy source failed")
)

// Operation errors.
var (
	ErrCryptoOperationFailed   = errors.New("noscrypt: crypto operation failed")
	ErrSigningFailed           = errors.New("noscrypt: signing failed")
	ErrKeypairGenerationFailed = errors.New("noscrypt: keypair generation failed")
)

// Configuration errors.
var (
	// ErrNotBuilt reports that the native engine was requested but the binary
	// was built without cgo or without the noscrypt tag.
	ErrNotBuilt = errors.New("noscrypt: native bindings not built")

	ErrUnknownBackend = errors.New("noscrypt: unknown backend")
	ErrPoolClosed     = errors.New("noscrypt: pool closed")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("noscrypt.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// RemapError converts bindings layer errors to public API errors.
func RemapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bindings.ErrNotBuilt) {
		return ErrNotBuilt
	}
	return err
}
