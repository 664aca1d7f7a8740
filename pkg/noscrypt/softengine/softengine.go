// Package softengine is a pure-Go signing engine for noscrypt contexts built on
// btcec/v2. It implements the same capability table as the native libnoscrypt
// binding and follows its contract: messages are hashed with SHA-256 and
// signed with BIP-340 Schnorr, public keys are 32-byte x-only points.
//
// The state block is plain memory owned by the caller:
//
//	[0:4]   initialization magic, zero when uninitialized or destroyed
//	[4:8]   reseed generation, big endian
//	[8:32]  reserved
//	[32:64] seed mix, folded into the signing aux randomness
package softengine

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

const (
	// StateSize is the size of one state block in bytes.
	StateSize = 64

	entropySize   = 32
	secretSize    = 32
	publicSize    = 32
	signatureSize = 64
)

var stateMagic = [4]byte{'n', 'c', 's', '1'}

var (
	ErrStateSize           = errors.New("softengine: state block has the wrong size")
	ErrStateNotInitialized = errors.New("softengine: state block is not initialized")
	ErrEntropySize         = errors.New("softengine: entropy must be 32 bytes")
	ErrInvalidArgument     = errors.New("softengine: invalid argument")
	ErrSecretOutOfRange    = errors.New("softengine: secret key is not a valid scalar")
)

// Engine is stateless; all per-context state lives in the caller's block.
type Engine struct{}

// New returns a ready Engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in logs and version output.
func (*Engine) Name() string {
	return "soft (btcec/v2)"
}

// StateSize reports the size of one state block.
func (*Engine) StateSize() int {
	return StateSize
}

// InitState clears state and seeds it with entropy.
func (*Engine) InitState(state, entropy []byte) error {
	if len(state) != StateSize {
		return ErrStateSize
	}
	if len(entropy) != entropySize {
		return ErrEntropySize
	}
	clear(state)
	copy(state[:4], stateMagic[:])
	mixSeed(state, entropy)
	return nil
}

// ReseedState folds fresh entropy into an initialized block in place.
func (*Engine) ReseedState(state, entropy []byte) error {
	if err := checkState(state); err != nil {
		return err
	}
	if len(entropy) != entropySize {
		return ErrEntropySize
	}
	gen := binary.BigEndian.Uint32(state[4:8])
	binary.BigEndian.PutUint32(state[4:8], gen+1)
	mixSeed(state, entropy)
	return nil
}

// DestroyState wipes an initialized block.
func (*Engine) DestroyState(state []byte) error {
	if err := checkState(state); err != nil {
		return err
	}
	clear(state)
	return nil
}

// DerivePublicKey returns the x-only public key for secret.
func (*Engine) DerivePublicKey(state, secret []byte) ([]byte, error) {
	if err := checkState(state); err != nil {
		return nil, err
	}
	priv, err := privateKey(secret)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	return schnorr.SerializePubKey(priv.PubKey()), nil
}

// ValidateSecret reports whether secret is a non-zero scalar below the curve
// order.
func (*Engine) ValidateSecret(state, secret []byte) (bool, error) {
	if err := checkState(state); err != nil {
		return false, err
	}
	if len(secret) != secretSize {
		return false, ErrInvalidArgument
	}
	return validScalar(secret), nil
}

// Sign hashes message with SHA-256 and signs the digest. The aux randomness
// is derived from the block's seed mix and the per-call entropy.
func (*Engine) Sign(state, secret, entropy, message []byte) ([]byte, error) {
	if err := checkState(state); err != nil {
		return nil, err
	}
	if len(entropy) != entropySize {
		return nil, ErrEntropySize
	}
	priv, err := privateKey(secret)
	if err != nil {
		return nil, err
	}
	defer priv.Zero()

	digest := sha256.Sum256(message)
	aux := auxRandomness(state, entropy)
	sig, err := schnorr.Sign(priv, digest[:], schnorr.CustomNonce(aux))
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// Verify checks a signature over SHA-256(message). A public key that is not on
// the curve or a malformed signature reports false.
func (*Engine) Verify(state, public, message, signature []byte) (bool, error) {
	if err := checkState(state); err != nil {
		return false, err
	}
	if len(public) != publicSize || len(signature) != signatureSize {
		return false, ErrInvalidArgument
	}
	pub, err := schnorr.ParsePubKey(public)
	if err != nil {
		return false, nil
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false, nil
	}
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], pub), nil
}

func checkState(state []byte) error {
	if len(state) != StateSize {
		return ErrStateSize
	}
	if !bytes.Equal(state[:4], stateMagic[:]) {
		return ErrStateNotInitialized
	}
	return nil
}

func mixSeed(state, entropy []byte) {
	h := sha256.New()
	h.Write(state[32:])
	h.Write(entropy)
	copy(state[32:], h.Sum(nil))
}

func auxRandomness(state, entropy []byte) [32]byte {
	h := sha256.New()
	h.Write(state[32:])
	h.Write(entropy)
	var aux [32]byte
	copy(aux[:], h.Sum(nil))
	return aux
}

func validScalar(secret []byte) bool {
	var s btcec.ModNScalar
	overflow := s.SetByteSlice(secret)
	valid := !overflow && !s.IsZero()
	s.Zero()
	return valid
}

func privateKey(secret []byte) (*btcec.PrivateKey, error) {
	if len(secret) != secretSize {
		return nil, ErrInvalidArgument
	}
	if !validScalar(secret) {
		return nil, ErrSecretOutOfRange
	}
	priv, _ := btcec.PrivKeyFromBytes(secret)
	return priv, nil
}
