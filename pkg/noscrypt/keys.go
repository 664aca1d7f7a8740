package noscrypt

import (
	"errors"
	"fmt"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/hexcodec"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/logging"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/metrics"
)

// SecretKey is a raw 32-byte secp256k1 scalar.
//
// SECURITY WARNING: String and fmt verbs print a placeholder; use Hex to
// export the key and Zero once it is no longer needed.
type SecretKey [SecretKeySize]byte

// PublicKey is a 32-byte x-only public key.
type PublicKey [PublicKeySize]byte

// Signature is a 64-byte BIP-340 signature.
type Signature [SignatureSize]byte

// Keypair holds a hex encoded secret key and its public key.
type Keypair struct {
	SecretKey string
	PublicKey string
}

// ParseSecretKey decodes a hex secret key. It checks the encoding and the
// length only; use Context.ValidSecret to check the scalar range.
func ParseSecretKey(s string) (SecretKey, error) {
	var k SecretKey
	b, err := decodeFixed(s, SecretKeySize, ErrInvalidKeyLength)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	ZeroizeBytes(b)
	return k, nil
}

// ParsePublicKey decodes a hex x-only public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	b, err := decodeFixed(s, PublicKeySize, ErrInvalidKeyLength)
	if err != nil {
		return k, err
	}
	copy(k[:], b)
	return k, nil
}

// ParseSignature decodes a hex signature.
func ParseSignature(s string) (Signature, error) {
	var sig Signature
	b, err := decodeFixed(s, SignatureSize, ErrInvalidSignatureLength)
	if err != nil {
		return sig, err
	}
	copy(sig[:], b)
	return sig, nil
}

func decodeFixed(text string, size int, lengthErr error) ([]byte, error) {
	b, err := hexcodec.DecodeFixed(text, size)
	if errors.Is(err, hexcodec.ErrSizeMismatch) {
		return nil, fmt.Errorf("%w: %w", lengthErr, err)
	}
	return b, err
}

// Hex returns the lowercase hex encoding of the key.
func (k SecretKey) Hex() string { return hexcodec.Encode(k[:]) }

// String never reveals the key.
func (k SecretKey) String() string { return logging.Placeholder() }

// Zero wipes the key in place.
func (k *SecretKey) Zero() { ZeroizeBytes(k[:]) }

// Hex returns the lowercase hex encoding of the key.
func (k PublicKey) Hex() string { return hexcodec.Encode(k[:]) }

func (k PublicKey) String() string { return k.Hex() }

// Hex returns the lowercase hex encoding of the signature.
func (s Signature) Hex() string { return hexcodec.Encode(s[:]) }

func (s Signature) String() string { return s.Hex() }

// GetPublicKey derives the hex public key for a hex secret key.
//
// Decoding errors are returned as is; a key that does not decode to 32 bytes
// yields ErrInvalidKeyLength and an out of range scalar yields
// ErrCryptoOperationFailed.
func (c *Context) GetPublicKey(secretKeyHex string) (string, error) {
	sk, err := ParseSecretKey(secretKeyHex)
	if err != nil {
		return "", c.rejected("GetPublicKey", err)
	}
	defer sk.Zero()
	pk, err := c.PublicKeyFromSecret(sk)
	if err != nil {
		return "", err
	}
	return pk.Hex(), nil
}

// PublicKeyFromSecret derives the public key for a raw secret key. It does not
// reseed the context; derivation consumes no randomness.
func (c *Context) PublicKeyFromSecret(sk SecretKey) (PublicKey, error) {
	const op = "GetPublicKey"
	var pk PublicKey
	defer ZeroizeBytes(sk[:])

	done := c.track(op)
	if err := c.lock(op); err != nil {
		done(metrics.ResultError)
		return pk, err
	}
	defer c.mu.Unlock()

	out, err := c.engine.DerivePublicKey(c.state, sk[:])
	if err == nil && len(out) != PublicKeySize {
		err = fmt.Errorf("engine returned %d byte public key", len(out))
	}
	if err != nil {
		done(metrics.ResultError)
		return pk, opError(op, fmt.Errorf("%w: %w", ErrCryptoOperationFailed, err))
	}
	copy(pk[:], out)
	done(metrics.ResultOK)
	return pk, nil
}

// ValidateSecretKey reports whether a hex secret key is a usable scalar.
// Malformed hex is an error; an out of range key (including all zeros) is
// a false result.
func (c *Context) ValidateSecretKey(secretKeyHex string) (bool, error) {
	sk, err := ParseSecretKey(secretKeyHex)
	if err != nil {
		return false, c.rejected("ValidateSecretKey", err)
	}
	defer sk.Zero()
	return c.ValidSecret(sk)
}

// ValidSecret reports whether a raw secret key is a usable scalar. The
// context is reseeded before the engine is consulted.
func (c *Context) ValidSecret(sk SecretKey) (bool, error) {
	const op = "ValidateSecretKey"
	defer ZeroizeBytes(sk[:])

	done := c.track(op)
	if err := c.lock(op); err != nil {
		done(metrics.ResultError)
		return false, err
	}
	defer c.mu.Unlock()

	if err := c.reseed(); err != nil {
		done(metrics.ResultError)
		return false, opError(op, err)
	}
	ok, err := c.engine.ValidateSecret(c.state, sk[:])
	if err != nil {
		done(metrics.ResultError)
		return false, opError(op, fmt.Errorf("%w: %w", ErrCryptoOperationFailed, err))
	}
	done(boolResult(ok))
	return ok, nil
}
