// Package internal holds helpers shared by the LS-8 packages.
package internal

import (
	"iter"
	"maps"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Defines collects name/value define pairs into a map.
// Later pairs override earlier ones with the same name.
func Defines(seqs ...iter.Seq2[string, string]) map[string]string {
	return maps.Collect(IterSeq2Concat(seqs...))
}
