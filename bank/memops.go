package bank

func (b *Bank) Memcpy(dst, src []byte) {
	copy(dst, src)
}

func (b *Bank) Memmove(dst, src []byte) {
	copy(dst, src)
}

// Memcmp returns the difference of the first differing byte pair.
func (b *Bank) Memcmp(s1, s2 []byte) int32 {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return int32(s1[i]) - int32(s2[i])
		}
	}
	return 0
}

func (b *Bank) Memset(dst []byte, c byte) {
	for i := range dst {
		dst[i] = c
	}
}
