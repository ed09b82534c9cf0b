package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/io"
)

// Console is the output device used by PRN and PRA.
type Console io.Console

const (
	REGISTER_COUNT = 8 // General purpose registers.
	REGISTER_SP    = 7 // Register holding the initial stack pointer.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_START": fmt.Sprintf("0x%02x", STACK_START),
	"SP":          fmt.Sprintf("R%d", REGISTER_SP),
	"FLAG_E":      fmt.Sprintf("%d", uint8(FLAG_E)),
	"FLAG_G":      fmt.Sprintf("%d", uint8(FLAG_G)),
	"FLAG_L":      fmt.Sprintf("%d", uint8(FLAG_L)),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Console Console // Output for PRN and PRA.

	Memory   Memory                // Main memory.
	Register [REGISTER_COUNT]uint8 // Register bank.
	Stack    Stack                 // Stack pointer into Memory.
	Flags    Flags                 // Result of the last CMP.
	Pc       int                   // Address of the next instruction.
	Running  bool                  // Cleared by HLT.

	Ticks int // Instructions executed since reset.
}

// NewCpu creates a new CPU, reset with empty memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(nil)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers and flags.
// - Empties the stack, and mirrors the stack pointer into R7.
// - Copies the boot image into memory.
// - Sets the PC to zero and marks the CPU as running.
func (cpu *Cpu) Reset(boot iter.Seq2[int, uint8]) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	clear(cpu.Register[:])
	cpu.Stack.Reset()
	cpu.Register[REGISTER_SP] = STACK_START
	cpu.Flags = 0
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.Running = true

	if boot == nil {
		return
	}

	for address, value := range boot {
		err = cpu.Memory.Write(address, value)
		if err != nil {
			cpu.Memory.Reset()
			return
		}
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp", "fl",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "sp":
			strval = fmt.Sprintf("%02X", cpu.Stack.Sp)
		case "fl":
			strval = cpu.Flags.String()
		default:
			strval = fmt.Sprintf("%02X", cpu.Register[reg[1]-'0'])
		}
		text += fmt.Sprintf("% 3s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line summary of the PC, the bytes at the PC, and
// the registers.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%02X %v |", cpu.Pc, cpu.Flags)
	for n := range 3 {
		value, err := cpu.Memory.Read(cpu.Pc + n)
		if err != nil {
			sb.WriteString(" --")
			continue
		}
		fmt.Fprintf(&sb, " %02X", value)
	}
	sb.WriteString(" |")
	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// reg returns the register selected by an operand byte.
func (cpu *Cpu) reg(index uint8) (reg *uint8, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrOutOfBounds
		return
	}

	reg = &cpu.Register[index]
	return
}

// Fetch reads the opcode at the PC and its declared operands.
func (cpu *Cpu) Fetch() (op Opcode, operand [2]uint8, err error) {
	var value uint8
	value, err = cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	op = Opcode(value)
	if op.Operands() > len(operand) {
		err = ErrUnsupportedOperation
		return
	}

	for n := range op.Operands() {
		operand[n], err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		return ErrHalted
	}

	pc := cpu.Pc

	op, operand, err := cpu.Fetch()
	defer func() {
		if err != nil {
			err = &ErrExecute{Pc: pc, Opcode: op, Err: err}
		}
	}()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%v: %v", cpu.Trace(), op)
	}

	err = cpu.Execute(op, operand[0], operand[1])
	if err != nil {
		return
	}

	if !op.SetsPc() {
		cpu.Pc = pc + op.Size()
	}

	cpu.Ticks++

	return
}

// Execute routes a decoded instruction to the ALU or its handler.
// The PC is not advanced.
func (cpu *Cpu) Execute(op Opcode, a, b uint8) (err error) {
	if op.IsAlu() {
		return cpu.alu(op, a, b)
	}

	handler := handlers[op]
	if handler == nil {
		return ErrUnsupportedOperation
	}

	return handler(cpu, a, b)
}

// Run ticks the CPU until it halts, or an error occurs.
func (cpu *Cpu) Run() (err error) {
	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}
