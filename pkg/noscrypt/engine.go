package noscrypt

// Sizes of the fixed buffers exchanged with the engine.
const (
	SecretKeySize = 32
	PublicKeySize = 32
	SignatureSize = 64
	EntropySize   = 32
)

// Engine is the capability table a signing engine provides. All methods take
// the context's state block, which the engine may read and write but must not
// retain beyond the call unless it allocated the block (see StateAllocator).
//
// Implementations need not be safe for concurrent use on the same block;
// Context serializes access.
type Engine interface {
	// StateSize reports the size of one state block in bytes.
	StateSize() int
	// InitState initializes a zeroed block with 32 bytes of entropy.
	InitState(state, entropy []byte) error
	// ReseedState re-initializes an initialized block in place.
	ReseedState(state, entropy []byte) error
	// DestroyState wipes the engine's internal state.
	DestroyState(state []byte) error
	// DerivePublicKey returns the 32-byte x-only public key for secret.
	DerivePublicKey(state, secret []byte) ([]byte, error)
	// ValidateSecret reports whether secret is a usable scalar. A false
	// result is not an error.
	ValidateSecret(state, secret []byte) (bool, error)
	// Sign returns a 64-byte signature over message using entropy as nonce
	// randomness.
	Sign(state, secret, entropy, message []byte) ([]byte, error)
	// Verify reports whether signature is valid for message and public. A
	// false result is not an error.
	Verify(state, public, message, signature []byte) (bool, error)
}

// StateAllocator is implemented by engines that must own the memory backing
// a state block, such as the native binding which allocates it in C memory.
type StateAllocator interface {
	AllocState(size int) []byte
	FreeState(state []byte)
}

// Named engines report a human readable name for logs and version output.
type Named interface {
	Name() string
}

func engineName(e Engine) string {
	if n, ok := e.(Named); ok {
		return n.Name()
	}
	return "custom"
}
