package noscrypt

import (
	"fmt"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/metrics"
)

// SignData signs data with a hex secret key and returns the hex signature.
//
// Each call draws fresh nonce entropy, so signing the same data twice
// usually yields different signatures; all of them verify.
func (c *Context) SignData(secretKeyHex string, data []byte) (string, error) {
	sk, err := ParseSecretKey(secretKeyHex)
	if err != nil {
		return "", c.rejected("SignData", err)
	}
	defer sk.Zero()
	sig, err := c.Sign(sk, data)
	if err != nil {
		return "", err
	}
	return sig.Hex(), nil
}

// SignString signs the UTF-8 bytes of text.
func (c *Context) SignString(secretKeyHex, text string) (string, error) {
	return c.SignData(secretKeyHex, []byte(text))
}

// Sign signs message with a raw secret key.
func (c *Context) Sign(sk SecretKey, message []byte) (Signature, error) {
	const op = "SignData"
	var sig Signature
	defer ZeroizeBytes(sk[:])

	nonce := make([]byte, EntropySize)
	defer ZeroizeBytes(nonce)

	done := c.track(op)
	if err := c.lock(op); err != nil {
		done(metrics.ResultError)
		return sig, err
	}
	defer c.mu.Unlock()

	if err := c.draw(nonce); err != nil {
		done(metrics.ResultError)
		return sig, opError(op, err)
	}
	if err := c.reseed(); err != nil {
		done(metrics.ResultError)
		return sig, opError(op, err)
	}

	out, err := c.engine.Sign(c.state, sk[:], nonce, message)
	if err == nil && len(out) != SignatureSize {
		err = fmt.Errorf("engine returned %d byte signature", len(out))
	}
	if err != nil {
		done(metrics.ResultError)
		return sig, opError(op, fmt.Errorf("%w: %w", ErrSigningFailed, err))
	}
	copy(sig[:], out)
	done(metrics.ResultOK)
	return sig, nil
}

// VerifyData checks a hex signature over data against a hex public key. Any
// mismatch in key, data or signature yields false; only malformed hex or
// wrong decoded lengths are errors.
func (c *Context) VerifyData(publicKeyHex string, data []byte, signatureHex string) (bool, error) {
	const op = "VerifyData"
	pk, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return false, c.rejected(op, err)
	}
	sig, err := ParseSignature(signatureHex)
	if err != nil {
		return false, c.rejected(op, err)
	}
	return c.Verify(pk, data, sig)
}

// VerifyString checks a signature over the UTF-8 bytes of text.
func (c *Context) VerifyString(publicKeyHex, text, signatureHex string) (bool, error) {
	return c.VerifyData(publicKeyHex, []byte(text), signatureHex)
}

// Verify checks a raw signature. The context is reseeded first even though
// verification consumes no randomness.
func (c *Context) Verify(pk PublicKey, message []byte, sig Signature) (bool, error) {
	const op = "VerifyData"
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
	ok, err := c.engine.Verify(c.state, pk[:], message, sig[:])
	if err != nil {
		done(metrics.ResultError)
		return false, opError(op, fmt.Errorf("%w: %w", ErrCryptoOperationFailed, err))
	}
	done(boolResult(ok))
	return ok, nil
}
