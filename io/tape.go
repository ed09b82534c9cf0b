package io

import (
	"io"
	"iter"
	"maps"
	"strconv"
)

// Tape is a console that appends its output to an io.Writer.
type Tape struct {
	Output io.Writer

	written int
}

var _ Console = (*Tape)(nil)

// Defines returns an iter of defines for the console.
func (tc *Tape) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"NEWLINE": "10",
	})
}

// Written returns the number of bytes written since the last rewind.
func (tc *Tape) Written() int {
	return tc.written
}

// Rewind is not possible on a tape, only the counter is reset.
func (tc *Tape) Rewind() {
	tc.written = 0
}

// Number writes value in decimal, one per line.
func (tc *Tape) Number(value uint8) (err error) {
	buf := strconv.AppendUint(nil, uint64(value), 10)
	buf = append(buf, '\n')
	return tc.write(buf)
}

// Char writes value as a single byte.
func (tc *Tape) Char(value uint8) (err error) {
	return tc.write([]byte{value})
}

func (tc *Tape) write(buf []byte) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	n, err := tc.Output.Write(buf)
	tc.written += n
	return
}
