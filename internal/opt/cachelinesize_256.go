//go:build raii_cachelinesize_256 && !raii_cachelinesize_32 && !raii_cachelinesize_64 && !raii_cachelinesize_128

package opt

// CacheLineSize is fixed to 256 bytes by the raii_cachelinesize_256 build tag.
const CacheLineSize uintptr = 256
