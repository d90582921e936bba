//go:build !raii_enable_padding && (raii_disable_padding || amd64 || 386 || arm || mips || mipsle || wasm)

package opt

import "sync/atomic"

// Padding reports whether PaddedUint64 occupies a whole cache line.
const Padding = false

// PaddedUint64 is an atomic counter.
// Padding is disabled by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
//
// Use: go build -tags=raii_disable_padding to turn it off everywhere.
type PaddedUint64 struct {
	atomic.Uint64
}
