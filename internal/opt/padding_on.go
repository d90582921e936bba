//go:build raii_enable_padding || !(raii_disable_padding || amd64 || 386 || arm || mips || mipsle || wasm)

package opt

import (
	"sync/atomic"
	"unsafe"
)

// Padding reports whether PaddedUint64 occupies a whole cache line.
const Padding = true

// PaddedUint64 is an atomic counter that owns its cache line.
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Use: go build -tags=raii_enable_padding to force it on any architecture.
type PaddedUint64 struct {
	atomic.Uint64
	_ [(CacheLineSize - unsafe.Sizeof(atomic.Uint64{})%CacheLineSize) % CacheLineSize]byte
}
