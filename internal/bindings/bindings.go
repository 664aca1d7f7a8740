//go:build cgo && noscrypt

package bindings

/*
#cgo LDFLAGS: -lnoscrypt
#include <stdlib.h>
#include <string.h>
#include <stdint.h>
#include <noscrypt.h>
*/
import "C"

import (
	"math"
	"unsafe"
)

// Engine drives libnoscrypt. State blocks are allocated in C memory so the
// library may keep internal pointers into them between calls.
type Engine struct{}

// NewEngine returns the native engine.
func NewEngine() (*Engine, error) {
	return &Engine{}, nil
}

// Name identifies the engine in logs and version output.
func (*Engine) Name() string {
	return Version()
}

// Version reports the linked library.
func Version() string {
	return "native (libnoscrypt)"
}

// StateSize wraps NCGetContextStructSize.
func (*Engine) StateSize() int {
	return int(C.NCGetContextStructSize())
}

// AllocState returns a zeroed C buffer of size bytes viewed as a Go slice.
func (*Engine) AllocState(size int) []byte {
	if size <= 0 {
		return nil
	}
	p := C.calloc(1, C.size_t(size))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

// FreeState wipes and releases a buffer returned by AllocState.
func (*Engine) FreeState(state []byte) {
	if len(state) == 0 {
		return
	}
	p := unsafe.Pointer(&state[0])
	C.memset(p, 0, C.size_t(len(state)))
	C.free(p)
}

// InitState wraps NCInitContext.
func (*Engine) InitState(state, entropy []byte) error {
	ctx, err := context(state)
	if err != nil {
		return err
	}
	if len(entropy) != entropySize {
		return ErrInvalidArgument
	}
	rc := C.NCInitContext(ctx, bytesPtr(entropy))
	return check("NCInitContext", rc)
}

// ReseedState wraps NCReInitContext.
func (*Engine) ReseedState(state, entropy []byte) error {
	ctx, err := context(state)
	if err != nil {
		return err
	}
	if len(entropy) != entropySize {
		return ErrInvalidArgument
	}
	rc := C.NCReInitContext(ctx, bytesPtr(entropy))
	return check("NCReInitContext", rc)
}

// DestroyState wraps NCDestroyContext.
func (*Engine) DestroyState(state []byte) error {
	ctx, err := context(state)
	if err != nil {
		return err
	}
	return check("NCDestroyContext", C.NCDestroyContext(ctx))
}

// DerivePublicKey wraps NCGetPublicKey.
func (*Engine) DerivePublicKey(state, secret []byte) ([]byte, error) {
	ctx, err := context(state)
	if err != nil {
		return nil, err
	}
	if len(secret) != secretKeySize {
		return nil, ErrInvalidArgument
	}
	out := make([]byte, publicKeySize)
	rc := C.NCGetPublicKey(ctx, secretKey(secret), (*C.NCPublicKey)(unsafe.Pointer(&out[0])))
	if err := check("NCGetPublicKey", rc); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateSecret wraps NCValidateSecretKey, which returns 1 for a valid key,
// 0 for an invalid one and a negative code on error.
func (*Engine) ValidateSecret(state, secret []byte) (bool, error) {
	ctx, err := context(state)
	if err != nil {
		return false, err
	}
	if len(secret) != secretKeySize {
		return false, ErrInvalidArgument
	}
	rc := int64(C.NCValidateSecretKey(ctx, secretKey(secret)))
	if rc < 0 {
		return false, &NativeError{Func: "NCValidateSecretKey", Code: rc}
	}
	return rc == 1, nil
}

// Sign wraps NCSignData. The library hashes message with SHA-256 before
// signing and uses entropy as the BIP-340 aux randomness.
func (*Engine) Sign(state, secret, entropy, message []byte) ([]byte, error) {
	ctx, err := context(state)
	if err != nil {
		return nil, err
	}
	if len(secret) != secretKeySize || len(entropy) != entropySize || uint64(len(message)) > math.MaxUint32 {
		return nil, ErrInvalidArgument
	}
	sig := make([]byte, signatureSize)
	rc := C.NCSignData(
		ctx,
		secretKey(secret),
		bytesPtr(entropy),
		bytesPtr(message),
		C.uint32_t(len(message)),
		bytesPtr(sig),
	)
	if err := check("NCSignData", rc); err != nil {
		return nil, err
	}
	return sig, nil
}

// Verify wraps NCVerifyData. Any non-success code is reported as an invalid
// signature.
func (*Engine) Verify(state, public, message, signature []byte) (bool, error) {
	ctx, err := context(state)
	if err != nil {
		return false, err
	}
	if len(public) != publicKeySize || len(signature) != signatureSize || uint64(len(message)) > math.MaxUint32 {
		return false, ErrInvalidArgument
	}
	rc := C.NCVerifyData(
		ctx,
		(*C.NCPublicKey)(unsafe.Pointer(&public[0])),
		bytesPtr(message),
		C.uint32_t(len(message)),
		bytesPtr(signature),
	)
	return rc == C.NC_SUCCESS, nil
}

func context(state []byte) (*C.NCContext, error) {
	if len(state) == 0 {
		return nil, ErrInvalidArgument
	}
	return (*C.NCContext)(unsafe.Pointer(&state[0])), nil
}

func secretKey(secret []byte) *C.NCSecretKey {
	return (*C.NCSecretKey)(unsafe.Pointer(&secret[0]))
}

func bytesPtr(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}

func check(fn string, rc C.NCResult) error {
	if rc == C.NC_SUCCESS {
		return nil
	}
	return &NativeError{Func: fn, Code: int64(rc)}
}
