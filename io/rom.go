package io

import (
	"iter"
	"slices"
)

// Rom is the boot image copied into memory at reset.
type Rom struct {
	Data []uint8
}

// Bytes yields each address and byte of the image, from address zero.
func (rc *Rom) Bytes() iter.Seq2[int, uint8] {
	return slices.All(rc.Data)
}

// Len returns the size of the image.
func (rc *Rom) Len() int {
	return len(rc.Data)
}
