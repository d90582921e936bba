package opt

import (
	"sync"
	"testing"
	"unsafe"
)

func TestCacheLineSize(t *testing.T) {
	if CacheLineSize == 0 || CacheLineSize&(CacheLineSize-1) != 0 {
		t.Fatalf("CacheLineSize=%d, want a power of two", CacheLineSize)
	}
}

func TestPaddedUint64Size(t *testing.T) {
	size := unsafe.Sizeof(PaddedUint64{})
	if !Padding {
		if size != 8 {
			t.Fatalf("PaddedUint64 size=%d, want 8", size)
		}
		return
	}
	if size%CacheLineSize != 0 {
		t.Fatalf("PaddedUint64 size=%d, not a multiple of %d", size, CacheLineSize)
	}
}

func TestPaddedUint64Atomic(t *testing.T) {
	var c PaddedUint64
	var wg sync.WaitGroup
	const n, loops = 8, 1000
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			for range loops {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := c.Load(); got != n*loops {
		t.Fatalf("count=%d, want %d", got, n*loops)
	}
}
