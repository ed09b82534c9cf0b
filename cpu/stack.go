package cpu

const (
	STACK_START = 0xf4 // Stack pointer of an empty stack.
)

// Stack is a downward growing stack held in main memory.
type Stack struct {
	Sp int // Address of the top of stack.
}

// Push decrements the stack pointer, then stores value at it.
func (s *Stack) Push(mem *Memory, value uint8) (err error) {
	if s.Full() {
		err = ErrStackFull
		return
	}

	err = mem.Write(s.Sp-1, value)
	if err != nil {
		return
	}

	s.Sp--
	return
}

// Pop loads the value at the stack pointer, then increments it.
func (s *Stack) Pop(mem *Memory) (value uint8, err error) {
	value, err = s.Peek(mem)
	if err != nil {
		return
	}

	s.Sp++
	return
}

// Peek returns the top of stack without removing it.
func (s *Stack) Peek(mem *Memory) (value uint8, err error) {
	if s.Empty() {
		err = ErrStackEmpty
		return
	}

	return mem.Read(s.Sp)
}

// Empty is true when nothing has been pushed.
func (s *Stack) Empty() bool {
	return s.Sp >= STACK_START
}

// Full is true when the stack has reached the bottom of memory.
func (s *Stack) Full() bool {
	return s.Sp <= 0
}

// Depth returns the number of bytes on the stack.
func (s *Stack) Depth() int {
	if s.Empty() {
		return 0
	}
	return STACK_START - s.Sp
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.Sp = STACK_START
}
