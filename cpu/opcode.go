package cpu

import (
	"fmt"
)

// Opcode is a single instruction byte.
//
// Bit layout:
//
//	7-6: number of operand bytes that follow the opcode
//	5:   ALU operation
//	4:   instruction sets the PC itself
//	3-0: instruction identity
type Opcode uint8

const (
	OP_NOP  = Opcode(0b0000_0000) // NOP
	OP_HLT  = Opcode(0b0000_0001) // HLT
	OP_RET  = Opcode(0b0001_0001) // RET
	OP_PUSH = Opcode(0b0100_0101) // PUSH
	OP_POP  = Opcode(0b0100_0110) // POP
	OP_PRN  = Opcode(0b0100_0111) // PRN
	OP_PRA  = Opcode(0b0100_1000) // PRA
	OP_CALL = Opcode(0b0101_0000) // CALL
	OP_JMP  = Opcode(0b0101_0100) // JMP
	OP_JEQ  = Opcode(0b0101_0101) // JEQ
	OP_JNE  = Opcode(0b0101_0110) // JNE
	OP_JGT  = Opcode(0b0101_0111) // JGT
	OP_JLT  = Opcode(0b0101_1000) // JLT
	OP_JLE  = Opcode(0b0101_1001) // JLE
	OP_JGE  = Opcode(0b0101_1010) // JGE
	OP_INC  = Opcode(0b0110_0101) // INC
	OP_DEC  = Opcode(0b0110_0110) // DEC
	OP_NOT  = Opcode(0b0110_1001) // NOT
	OP_LDI  = Opcode(0b1000_0010) // LDI
	OP_LD   = Opcode(0b1000_0011) // LD
	OP_ST   = Opcode(0b1000_0100) // ST
	OP_ADD  = Opcode(0b1010_0000) // ADD
	OP_MUL  = Opcode(0b1010_0010) // MUL
	OP_SUB  = Opcode(0b1010_0011) // SUB
	OP_MOD  = Opcode(0b1010_0100) // MOD
	OP_CMP  = Opcode(0b1010_0111) // CMP
	OP_AND  = Opcode(0b1010_1000) // AND
	OP_OR   = Opcode(0b1010_1010) // OR
	OP_XOR  = Opcode(0b1010_1011) // XOR
	OP_SHL  = Opcode(0b1010_1100) // SHL
	OP_SHR  = Opcode(0b1010_1101) // SHR
)

var opcodeName = map[Opcode]string{
	OP_NOP:  "NOP",
	OP_HLT:  "HLT",
	OP_RET:  "RET",
	OP_PUSH: "PUSH",
	OP_POP:  "POP",
	OP_PRN:  "PRN",
	OP_PRA:  "PRA",
	OP_CALL: "CALL",
	OP_JMP:  "JMP",
	OP_JEQ:  "JEQ",
	OP_JNE:  "JNE",
	OP_JGT:  "JGT",
	OP_JLT:  "JLT",
	OP_JLE:  "JLE",
	OP_JGE:  "JGE",
	OP_INC:  "INC",
	OP_DEC:  "DEC",
	OP_NOT:  "NOT",
	OP_LDI:  "LDI",
	OP_LD:   "LD",
	OP_ST:   "ST",
	OP_ADD:  "ADD",
	OP_MUL:  "MUL",
	OP_SUB:  "SUB",
	OP_MOD:  "MOD",
	OP_CMP:  "CMP",
	OP_AND:  "AND",
	OP_OR:   "OR",
	OP_XOR:  "XOR",
	OP_SHL:  "SHL",
	OP_SHR:  "SHR",
}

// opcodeByName is the reverse of opcodeName, used by the assembler.
var opcodeByName = func() map[string]Opcode {
	names := make(map[string]Opcode, len(opcodeName))
	for op, name := range opcodeName {
		names[name] = op
	}
	return names
}()

// LookupOpcode returns the opcode for a mnemonic.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeByName[name]
	return
}

// Operands returns the number of operand bytes following the opcode.
func (op Opcode) Operands() int {
	return int(op>>6) & 0x3
}

// IsAlu returns true if the opcode is routed to the ALU.
func (op Opcode) IsAlu() bool {
	return (op>>5)&1 == 1
}

// SetsPc returns true if the instruction is responsible for the PC.
func (op Opcode) SetsPc() bool {
	return (op>>4)&1 == 1
}

// Size returns the total instruction length in bytes.
func (op Opcode) Size() int {
	return 1 + op.Operands()
}

// Known returns true if the opcode is part of the instruction set.
func (op Opcode) Known() bool {
	_, ok := opcodeName[op]
	return ok
}

// String returns the mnemonic, or the binary value for unknown opcodes.
func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return fmt.Sprintf("%08b", uint8(op))
	}
	return name
}
