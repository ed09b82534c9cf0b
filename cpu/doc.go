// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of 256 bytes of memory, eight 8-bit general-purpose
// registers (R0-R7), a program counter (PC), a stack pointer (SP) for a
// stack that grows down from 0xF4, and a flags register holding the
// Less/Greater/Equal result of the last CMP.
//
// Each opcode byte encodes its operand count, whether it is routed to the
// ALU, and whether it sets the PC itself. Everything else is dispatched
// through a table of handlers indexed by opcode.
//
// The assembler accepts LS-8 mnemonics with labels and equates, and
// evaluates $(...) expressions at assembly time.
package cpu
