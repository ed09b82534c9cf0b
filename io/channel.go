// Package io provides the devices attached to the LS-8 CPU.
// It includes the console (Tape) that receives PRN and PRA output, and
// the boot ROM (Rom) that holds the program image copied into memory at reset.
package io

// Console defines the interface for the output device of the LS-8 system.
type Console interface {
	// Number writes a value as a decimal integer, followed by a newline.
	Number(value uint8) error
	// Char writes a value as a single raw byte.
	Char(value uint8) error
}
