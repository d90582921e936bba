//go:build raii_cachelinesize_64 && !raii_cachelinesize_32 && !raii_cachelinesize_128 && !raii_cachelinesize_256

package opt

// CacheLineSize is fixed to 64 bytes by the raii_cachelinesize_64 build tag.
const CacheLineSize uintptr = 64
