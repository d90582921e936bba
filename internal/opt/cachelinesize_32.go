//go:build raii_cachelinesize_32 && !raii_cachelinesize_64 && !raii_cachelinesize_128 && !raii_cachelinesize_256

package opt

// CacheLineSize is fixed to 32 bytes by the raii_cachelinesize_32 build tag.
const CacheLineSize uintptr = 32
