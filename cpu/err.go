package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted               = errors.New(f("cpu halted"))
	ErrUnsupportedOperation = errors.New(f("unsupported operation"))
	ErrOutOfBounds          = errors.New(f("out of bounds access"))
	ErrStackEmpty           = errors.New(f("stack empty"))
	ErrStackFull            = errors.New(f("stack full"))
	ErrDivideByZero         = errors.New(f("divide by zero"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
)

// ErrExecute reports the instruction that failed.
type ErrExecute struct {
	Pc     int
	Opcode Opcode
	Err    error
}

func (err *ErrExecute) Error() string {
	return f("pc 0x%02x opcode %08b (%v) %v", err.Pc, uint8(err.Opcode), err.Opcode, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
