package noscrypt

import "runtime"

// ZeroizeBytes overwrites buf with zeros and keeps it alive until the stores
// complete (golang/go#33325). The garbage collector or the engine may still
// hold copies, so this is best effort.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
