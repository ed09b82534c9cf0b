package cpu

import (
	"strings"
)

// Flags holds the result of the last comparison.
type Flags uint8

const (
	FLAG_E = Flags(1 << 0) // Equal
	FLAG_G = Flags(1 << 1) // Greater
	FLAG_L = Flags(1 << 2) // Less
)

// compare returns the flags for a against b.
func compare(a, b uint8) Flags {
	switch {
	case a < b:
		return FLAG_L
	case a > b:
		return FLAG_G
	default:
		return FLAG_E
	}
}

func (fl Flags) Equal() bool   { return fl&FLAG_E != 0 }
func (fl Flags) Greater() bool { return fl&FLAG_G != 0 }
func (fl Flags) Less() bool    { return fl&FLAG_L != 0 }

// String returns the flags as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	var sb strings.Builder
	for _, bit := range []struct {
		flag Flags
		name byte
	}{{FLAG_L, 'L'}, {FLAG_G, 'G'}, {FLAG_E, 'E'}} {
		if fl&bit.flag != 0 {
			sb.WriteByte(bit.name)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}
