package cpu

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// Line is a line of source with the bytes it generated.
type Line struct {
	LineNo    int      // Source line number, 1 based.
	Address   int      // Memory address of the first byte.
	Words     []string // Source words, after equate expansion.
	Bytes     []uint8  // Generated bytes.
	LinkLabel string   // Label to resolve into Bytes[LinkIndex].
	LinkIndex int
}

// Program is an assembled or loaded memory image, with its listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug returns the line that generated the byte at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, line := range prog.Lines {
		if address >= line.Address && address < line.Address+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: address - line.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the image.
func (prog *Program) Size() (size int) {
	for _, line := range prog.Lines {
		size = max(size, line.Address+len(line.Bytes))
	}

	return
}

// Binary returns the memory image, zero filled between lines.
func (prog *Program) Binary() (bins []uint8) {
	bins = make([]uint8, prog.Size())
	for address, value := range prog.Codes() {
		bins[address] = value
	}

	return
}

// Codes yields every generated byte with its address.
func (prog *Program) Codes() iter.Seq2[int, uint8] {
	return func(yield func(address int, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Text writes the program in the loadable binary text format, one byte
// per line, with the source words as a comment on each line's first byte.
func (prog *Program) Text(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		for n, value := range line.Bytes {
			text := fmt.Sprintf("%08b", value)
			if n == 0 && len(line.Words) != 0 {
				text += " # " + strings.Join(line.Words, " ")
			}
			_, err = fmt.Fprintln(w, text)
			if err != nil {
				return
			}
		}
	}

	return
}

// operandWords renders the operands of an instruction.
func operandWords(op Opcode, operand []uint8) (words []string) {
	for n, value := range operand {
		if op == OP_LDI && n == 1 {
			words = append(words, fmt.Sprintf("%d", value))
		} else {
			words = append(words, fmt.Sprintf("R%d", value))
		}
	}

	return
}

// Disassemble decodes a memory image into a program listing.
// Unknown opcodes, and truncated instructions, are listed as .db bytes.
func Disassemble(image []uint8) (prog *Program) {
	prog = &Program{}

	for address := 0; address < len(image); {
		op := Opcode(image[address])
		size := op.Size()

		line := Line{Address: address}
		if !op.Known() || address+size > len(image) {
			line.Words = []string{".db", fmt.Sprintf("0b%08b", uint8(op))}
			line.Bytes = []uint8{uint8(op)}
		} else {
			operand := image[address+1 : address+size]
			line.Words = append([]string{op.String()}, operandWords(op, operand)...)
			line.Bytes = slices.Clone(image[address : address+size])
		}
		line.LineNo = len(prog.Lines) + 1

		prog.Lines = append(prog.Lines, line)
		address += len(line.Bytes)
	}

	return
}
