// SPDX-License-Identifier: MIT

package walk

import "sync/atomic"

// bitset is a packed bitset updated with CAS loops on 64-bit words.
// testAndSet and test are safe for concurrent use; clear is not.
type bitset struct{ w []atomic.Uint64 }

func newBitset(n int) *bitset {
	return &bitset{w: make([]atomic.Uint64, (n+63)>>6)}
}

// testAndSet atomically sets bit i and reports whether it was already set.
func (b *bitset) testAndSet(i int) bool {
	mask := uint64(1) << (uint(i) & 63)
	word := &b.w[i>>6]
	for {
		old := word.Load()
		if old&mask != 0 {
			return true
		}
		if word.CompareAndSwap(old, old|mask) {
			return false
		}
	}
}

func (b *bitset) test(i int) bool {
	return b.w[i>>6].Load()&(uint64(1)<<(uint(i)&63)) != 0
}

// nextClear returns the first clear bit at or after i (wrapping), or -1
// when all n bits are set.
func (b *bitset) nextClear(i, n int) int {
	for k := 0; k < n; k++ {
		j := i + k
		if j >= n {
			j -= n
		}
		// Skip full words quickly.
		if j&63 == 0 && b.w[j>>6].Load() == ^uint64(0) && j+64 <= n {
			k += 63
			continue
		}
		if !b.test(j) {
			return j
		}
	}

	return -1
}

func (b *bitset) clear() {
	for i := range b.w {
		b.w[i].Store(0)
	}
}
