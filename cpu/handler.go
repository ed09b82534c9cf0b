package cpu

// handler executes a non-ALU instruction with its two operand bytes.
// Handlers for instructions that set the PC must leave it at the next
// instruction to execute.
type handler func(cpu *Cpu, a, b uint8) error

// handlers is the dispatch table, indexed by opcode.
var handlers [256]handler

func init() {
	handlers[OP_NOP] = func(cpu *Cpu, a, b uint8) error { return nil }
	handlers[OP_HLT] = opHlt
	handlers[OP_LDI] = opLdi
	handlers[OP_LD] = opLd
	handlers[OP_ST] = opSt
	handlers[OP_PRN] = opPrn
	handlers[OP_PRA] = opPra
	handlers[OP_PUSH] = opPush
	handlers[OP_POP] = opPop
	handlers[OP_CALL] = opCall
	handlers[OP_RET] = opRet
	handlers[OP_JMP] = jumpIf(func(Flags) bool { return true })
	handlers[OP_JEQ] = jumpIf(Flags.Equal)
	handlers[OP_JNE] = jumpIf(func(fl Flags) bool { return !fl.Equal() })
	handlers[OP_JGT] = jumpIf(Flags.Greater)
	handlers[OP_JLT] = jumpIf(Flags.Less)
	handlers[OP_JGE] = jumpIf(func(fl Flags) bool { return fl.Greater() || fl.Equal() })
	handlers[OP_JLE] = jumpIf(func(fl Flags) bool { return fl.Less() || fl.Equal() })
}

func opHlt(cpu *Cpu, a, b uint8) error {
	cpu.Running = false
	return nil
}

func opLdi(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	*reg = b
	return
}

// opLd loads register a from the address held in register b.
func opLd(cpu *Cpu, a, b uint8) (err error) {
	reg_a, err := cpu.reg(a)
	if err != nil {
		return
	}
	reg_b, err := cpu.reg(b)
	if err != nil {
		return
	}

	value, err := cpu.Memory.Read(int(*reg_b))
	if err != nil {
		return
	}

	*reg_a = value
	return
}

// opSt stores register b at the address held in register a.
func opSt(cpu *Cpu, a, b uint8) (err error) {
	reg_a, err := cpu.reg(a)
	if err != nil {
		return
	}
	reg_b, err := cpu.reg(b)
	if err != nil {
		return
	}

	return cpu.Memory.Write(int(*reg_a), *reg_b)
}

func opPrn(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	if cpu.Console == nil {
		return
	}

	return cpu.Console.Number(*reg)
}

func opPra(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	if cpu.Console == nil {
		return
	}

	return cpu.Console.Char(*reg)
}

func opPush(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	return cpu.Stack.Push(&cpu.Memory, *reg)
}

func opPop(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	value, err := cpu.Stack.Pop(&cpu.Memory)
	if err != nil {
		return
	}

	*reg = value
	return
}

// opCall pushes the address after the CALL, and jumps to register a.
func opCall(cpu *Cpu, a, b uint8) (err error) {
	reg, err := cpu.reg(a)
	if err != nil {
		return
	}

	next_pc := cpu.Pc + OP_CALL.Size()
	if next_pc >= MEMORY_SIZE {
		err = ErrOutOfBounds
		return
	}

	err = cpu.Stack.Push(&cpu.Memory, uint8(next_pc))
	if err != nil {
		return
	}

	cpu.Pc = int(*reg)
	return
}

func opRet(cpu *Cpu, a, b uint8) (err error) {
	value, err := cpu.Stack.Pop(&cpu.Memory)
	if err != nil {
		return
	}

	cpu.Pc = int(value)
	return
}

// jumpIf makes a handler that jumps to register a when cond holds on the
// flags, and otherwise steps over the instruction.
func jumpIf(cond func(Flags) bool) handler {
	return func(cpu *Cpu, a, b uint8) (err error) {
		reg, err := cpu.reg(a)
		if err != nil {
			return
		}

		if cond(cpu.Flags) {
			cpu.Pc = int(*reg)
		} else {
			cpu.Pc += OP_JMP.Size()
		}
		return
	}
}
