package cpu

// alu performs the ALU operation on registers a and b.
// The result, if any, replaces register a.
func (cpu *Cpu) alu(op Opcode, a, b uint8) (err error) {
	if !op.IsAlu() || !op.Known() {
		err = ErrUnsupportedOperation
		return
	}

	reg_a, err := cpu.reg(a)
	if err != nil {
		return
	}

	// Single operand ALU ops ignore b.
	reg_b := new(uint8)
	if op.Operands() > 1 {
		reg_b, err = cpu.reg(b)
		if err != nil {
			return
		}
	}

	input := *reg_a
	value := *reg_b

	var output uint8
	switch op {
	case OP_ADD:
		output = input + value
	case OP_SUB:
		output = input - value
	case OP_MUL:
		output = input * value
	case OP_MOD:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		output = input % value
	case OP_INC:
		output = input + 1
	case OP_DEC:
		output = input - 1
	case OP_AND:
		output = input & value
	case OP_OR:
		output = input | value
	case OP_XOR:
		output = input ^ value
	case OP_NOT:
		output = ^input
	case OP_SHL:
		output = input << (value & 0x7)
	case OP_SHR:
		output = input >> (value & 0x7)
	case OP_CMP:
		cpu.Flags = compare(input, value)
		return
	default:
		err = ErrUnsupportedOperation
		return
	}

	*reg_a = output

	return
}
