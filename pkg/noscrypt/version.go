package noscrypt

import "github.com/nostrkit/noscrypt-go/internal/bindings"

var (
	Version         = "v0.0.0-in-progress"
	UpstreamLibrary = "libnoscrypt"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// NativeVersion returns the version string reported by the native bindings,
// or an empty string when they are not built.
func NativeVersion() string {
	return bindings.Version()
}

// EngineName returns the name of the engine backing c.
func (c *Context) EngineName() string {
	return engineName(c.engine)
}
