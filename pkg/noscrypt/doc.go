// Package noscrypt is a Go binding for secp256k1 BIP-340 Schnorr signing as
// used by Nostr. It owns an opaque engine state block (a Context) and exposes
// public-key derivation, secret-key validation, signing, verification and
// keypair generation over hex-encoded keys.
//
// A Context is created seeded with 32 bytes of fresh entropy and must be
// closed exactly once:
//
//	c, err := noscrypt.New(noscrypt.Config{})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	pub, err := c.GetPublicKey(secretHex)
//	sig, err := c.SignString(secretHex, "hello")
//	ok, err := c.VerifyString(pub, "hello", sig)
//
// Validation, signing and verification reseed the state block with fresh
// entropy immediately before calling the engine, so no seed is ever used for
// more than one operation.
//
// # Engines
//
// The curve arithmetic lives behind the Engine capability table. The default
// engine is the pure-Go softengine (btcec/v2). Builds with cgo and the
// noscrypt tag can select the native libnoscrypt engine with
// Config{Backend: BackendNative}. Tests and callers may inject their own
// engine with WithEngine.
//
// # Concurrency
//
// A Context serializes its own operations; it never touches the state block
// from two goroutines at once. Callers needing parallel throughput should use
// a Pool, which hands out one Context per worker.
//
// # Errors
//
// Malformed input is rejected before the engine is reached and reported with
// ErrInvalidEncoding, ErrInvalidLength, ErrInvalidKeyLength or
// ErrInvalidSignatureLength. A false validation or verification result is not
// an error. Engine lifecycle failures are fatal for the Context.
package noscrypt
