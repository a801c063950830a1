package palette

import "unicode/utf16"

// mulberry32 is a 32-bit state mixing generator; all arithmetic wraps at 32 bits
type mulberry32 struct {
	state uint32
}

func (m *mulberry32) next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// SeedFromString hashes a seed phrase with 32-bit FNV-1a over UTF-16 code units
func SeedFromString(s string) uint32 {
	h := uint32(2166136261)
	var buf [2]uint16
	for _, r := range s {
		for _, unit := range utf16.AppendRune(buf[:0], r) {
			h ^= uint32(unit)
			h *= 16777619
		}
	}
	return h
}
