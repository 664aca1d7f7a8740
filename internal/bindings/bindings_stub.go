//go:build !cgo || !noscrypt

package bindings

// Stub implementations for builds without cgo or without the noscrypt tag.
// NewEngine reports ErrNotBuilt; the methods exist so callers compile.

type Engine struct{}

func NewEngine() (*Engine, error) {
	return nil, ErrNotBuilt
}

func Version() string { return "" }

func (*Engine) Name() string { return "native (not built)" }
func (*Engine) StateSize() int { return 0 }
func (*Engine) AllocState(int) []byte { return nil }
func (*Engine) FreeState([]byte) {}
func (*Engine) InitState(_, _ []byte) error { return ErrNotBuilt }
func (*Engine) ReseedState(_, _ []byte) error { return ErrNotBuilt }
func (*Engine) DestroyState([]byte) error { return ErrNotBuilt }
func (*Engine) DerivePublicKey(_, _ []byte) ([]byte, error) { return nil, ErrNotBuilt }
func (*Engine) ValidateSecret(_, _ []byte) (bool, error) { return false, ErrNotBuilt }
func (*Engine) Sign(_, _, _, _ []byte) ([]byte, error) { return nil, ErrNotBuilt }
func (*Engine) Verify(_, _, _, _ []byte) (bool, error) { return false, ErrNotBuilt }
