package cpu

const (
	MEMORY_SIZE = 256 // Addressable bytes.
)

// Memory is the fixed size main memory of the CPU.
type Memory [MEMORY_SIZE]uint8

// Read returns the byte at address.
func (mem *Memory) Read(address int) (value uint8, err error) {
	if address < 0 || address >= len(mem) {
		err = ErrOutOfBounds
		return
	}

	value = mem[address]
	return
}

// Write stores a byte at address.
func (mem *Memory) Write(address int, value uint8) (err error) {
	if address < 0 || address >= len(mem) {
		err = ErrOutOfBounds
		return
	}

	mem[address] = value
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
