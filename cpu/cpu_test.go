package cpu

import (
	"bytes"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/ls8/io"
)

// newTestCpu returns a CPU booted with program, and its console output.
func newTestCpu(t *testing.T, program ...uint8) (cpu *Cpu, output *bytes.Buffer) {
	output = &bytes.Buffer{}

	cpu = NewCpu()
	cpu.Console = &io.Tape{Output: output}
	require.NoError(t, cpu.Reset(slices.All(program)))

	return
}

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.True(cpu.Running)
	assert.Equal(0, cpu.Pc)
	assert.Equal(STACK_START, cpu.Stack.Sp)
	assert.Equal(uint8(STACK_START), cpu.Register[REGISTER_SP])
	assert.Equal(Flags(0), cpu.Flags)
	for _, value := range cpu.Memory {
		assert.Equal(uint8(0), value)
	}
}

func TestReset_TooLarge(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	image := make([]uint8, MEMORY_SIZE+1)
	image[0] = 0x82

	err := cpu.Reset(slices.All(image))
	assert.ErrorIs(err, ErrOutOfBounds)
	assert.Equal(uint8(0), cpu.Memory[0])
}

func TestPrint(t *testing.T) {
	assert := assert.New(t)

	// LDI R0,5; PRN R0; HLT
	cpu, output := newTestCpu(t,
		0b10000010, 0b00000000, 0b00000101,
		0b01000111, 0b00000000,
		0b00000001,
	)

	assert.NoError(cpu.Run())
	assert.Equal("5\n", output.String())
	assert.False(cpu.Running)
	assert.Equal(6, cpu.Pc)
	assert.Equal(3, cpu.Ticks)
}

func TestLdiPrn(t *testing.T) {
	assert := assert.New(t)

	for value := range 256 {
		for reg := range uint8(REGISTER_COUNT) {
			cpu, output := newTestCpu(t,
				uint8(OP_LDI), reg, uint8(value),
				uint8(OP_PRN), reg,
				uint8(OP_HLT),
			)
			assert.NoError(cpu.Run())
			assert.Equal(strconv.Itoa(value)+"\n", output.String())
		}
	}
}

func TestHaltStops(t *testing.T) {
	assert := assert.New(t)

	cpu, output := newTestCpu(t,
		uint8(OP_HLT),
		uint8(OP_LDI), 0, 9,
		uint8(OP_PRN), 0,
	)

	assert.NoError(cpu.Run())
	assert.Equal("", output.String())
	assert.Equal(uint8(0), cpu.Register[0])
	assert.Equal(1, cpu.Pc)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
}

func TestPushPop(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []uint8{0, 1, 7, 0x7f, 0x80, 0xff} {
		for ra := range uint8(REGISTER_COUNT) {
			for rb := range uint8(REGISTER_COUNT) {
				if ra == rb {
					continue
				}
				cpu, output := newTestCpu(t,
					uint8(OP_LDI), ra, value,
					uint8(OP_PUSH), ra,
					uint8(OP_POP), rb,
					uint8(OP_PRN), rb,
					uint8(OP_HLT),
				)
				assert.NoError(cpu.Run())
				assert.Equal(value, cpu.Register[rb])
				assert.Equal(strconv.Itoa(int(value))+"\n", output.String())
				assert.Equal(STACK_START, cpu.Stack.Sp)
			}
		}
	}
}

func TestPushPop_Sp(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		uint8(OP_LDI), 0, 7,
		uint8(OP_PUSH), 0,
		uint8(OP_POP), 1,
		uint8(OP_HLT),
	)

	assert.NoError(cpu.Tick())
	sp := cpu.Stack.Sp

	assert.NoError(cpu.Tick())
	assert.Equal(sp-1, cpu.Stack.Sp)
	assert.Equal(uint8(7), cpu.Memory[sp-1])

	assert.NoError(cpu.Tick())
	assert.Equal(sp, cpu.Stack.Sp)
	assert.Equal(uint8(7), cpu.Register[1])
}

func TestCallRet(t *testing.T) {
	assert := assert.New(t)

	// 0: LDI R1,8; 3: CALL R1; 5: PRN R0; 7: HLT; 8: LDI R0,42; 11: RET
	cpu, output := newTestCpu(t,
		uint8(OP_LDI), 1, 8,
		uint8(OP_CALL), 1,
		uint8(OP_PRN), 0,
		uint8(OP_HLT),
		uint8(OP_LDI), 0, 42,
		uint8(OP_RET),
	)

	assert.NoError(cpu.Tick())
	sp := cpu.Stack.Sp

	assert.NoError(cpu.Tick())
	assert.Equal(8, cpu.Pc)
	assert.Equal(sp-1, cpu.Stack.Sp)
	assert.Equal(uint8(5), cpu.Memory[cpu.Stack.Sp])

	assert.NoError(cpu.Tick())
	assert.NoError(cpu.Tick())
	assert.Equal(5, cpu.Pc)
	assert.Equal(sp, cpu.Stack.Sp)

	assert.NoError(cpu.Run())
	assert.Equal("42\n", output.String())
}

func TestRet_Empty(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_RET))

	err := cpu.Tick()
	assert.ErrorIs(err, ErrStackEmpty)
	assert.Equal(0, cpu.Pc)
}

func TestStackOverflow(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		uint8(OP_PUSH), 0,
		uint8(OP_PUSH), 0,
	)
	cpu.Stack.Sp = 1

	assert.NoError(cpu.Tick())
	assert.Equal(0, cpu.Stack.Sp)

	assert.ErrorIs(cpu.Tick(), ErrStackFull)
	assert.Equal(2, cpu.Pc)
	assert.Equal(0, cpu.Stack.Sp)
}

func TestUnsupported(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		op   uint8
	}{
		{"handler", 0b0100_1111},
		{"alu", 0b1010_1111},
		{"operands", 0b1100_0000},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t, entry.op, 0, 0, 0)

		err := cpu.Tick()
		assert.ErrorIs(err, ErrUnsupportedOperation, entry.name)

		var execute *ErrExecute
		if assert.True(errors.As(err, &execute), entry.name) {
			assert.Equal(0, execute.Pc, entry.name)
			assert.Equal(Opcode(entry.op), execute.Opcode, entry.name)
			assert.Contains(execute.Error(), "pc 0x00", entry.name)
		}
	}
}

func TestRegisterOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name    string
		program []uint8
	}{
		{"ldi", []uint8{uint8(OP_LDI), 8, 1}},
		{"prn", []uint8{uint8(OP_PRN), 9}},
		{"push", []uint8{uint8(OP_PUSH), 0xff}},
		{"add", []uint8{uint8(OP_ADD), 0, 8}},
		{"call", []uint8{uint8(OP_CALL), 8}},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t, entry.program...)
		assert.ErrorIs(cpu.Tick(), ErrOutOfBounds, entry.name)
	}
}

func TestFetchOutOfBounds(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t)
	cpu.Memory[MEMORY_SIZE-2] = uint8(OP_LDI)
	cpu.Pc = MEMORY_SIZE - 2

	assert.ErrorIs(cpu.Tick(), ErrOutOfBounds)

	cpu.Pc = MEMORY_SIZE
	assert.ErrorIs(cpu.Tick(), ErrOutOfBounds)
}

func TestLdSt(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t,
		uint8(OP_LDI), 0, 0x80, // address
		uint8(OP_LDI), 1, 0x5a, // value
		uint8(OP_ST), 0, 1,
		uint8(OP_LD), 2, 0,
		uint8(OP_HLT),
	)

	assert.NoError(cpu.Run())
	assert.Equal(uint8(0x5a), cpu.Memory[0x80])
	assert.Equal(uint8(0x5a), cpu.Register[2])
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op    Opcode
		flags Flags
		taken bool
	}{
		{OP_JMP, 0, true},
		{OP_JEQ, FLAG_E, true},
		{OP_JEQ, FLAG_L, false},
		{OP_JNE, FLAG_E, false},
		{OP_JNE, FLAG_G, true},
		{OP_JGT, FLAG_G, true},
		{OP_JGT, FLAG_E, false},
		{OP_JLT, FLAG_L, true},
		{OP_JLT, FLAG_G, false},
		{OP_JGE, FLAG_G, true},
		{OP_JGE, FLAG_E, true},
		{OP_JGE, FLAG_L, false},
		{OP_JLE, FLAG_L, true},
		{OP_JLE, FLAG_E, true},
		{OP_JLE, FLAG_G, false},
	}

	for _, entry := range table {
		cpu, _ := newTestCpu(t, uint8(entry.op), 3)
		cpu.Register[3] = 0x40
		cpu.Flags = entry.flags

		assert.NoError(cpu.Tick(), entry.op.String())
		if entry.taken {
			assert.Equal(0x40, cpu.Pc, entry.op.String())
		} else {
			assert.Equal(2, cpu.Pc, entry.op.String())
		}
	}
}

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, uint8(OP_LDI), 0, 5)
	cpu.Register[1] = 0xab

	assert.Equal("00 --- | 82 00 05 | 00 AB 00 00 00 00 00 F4", cpu.Trace())

	cpu.Pc = MEMORY_SIZE - 1
	assert.Equal("FF --- | 00 -- -- | 00 AB 00 00 00 00 00 F4", cpu.Trace())
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Flags = FLAG_G
	cpu.Register[2] = 0x12

	text := cpu.String()
	assert.Contains(text, " pc: 00\n")
	assert.Contains(text, " sp: F4\n")
	assert.Contains(text, " fl: -G-\n")
	assert.Contains(text, " r2: 12\n")
	assert.Contains(text, " r7: F4\n")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("0xf4", defines["STACK_START"])
	assert.Equal("R7", defines["SP"])
	assert.Equal("4", defines["FLAG_L"])
}
