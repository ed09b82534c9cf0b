// Package loader reads LS-8 programs in the binary text format.
//
// Each line holds one byte as a binary literal, optionally followed by a
// '#' comment. Blank and comment-only lines are skipped, and the bytes are
// placed at successive addresses starting from zero.
package loader

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrProgramNotFound  = errors.New(f("program not found"))
	ErrMalformedProgram = errors.New(f("malformed program"))
)

// ErrPath indicates the program file that failed to load.
type ErrPath struct {
	Path string
	Err  error
}

func (err *ErrPath) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrPath) Unwrap() error {
	return err.Err
}

// Parser builds a program from its source text.
type Parser func(input io.Reader) (*cpu.Program, error)

// Load reads the program file at path.
func Load(path string) (prog *cpu.Program, err error) {
	return Open(path, Parse)
}

// Open reads the file at path with parse.
// Errors name the path.
func Open(path string, parse Parser) (prog *cpu.Program, err error) {
	defer func() {
		if err != nil {
			err = &ErrPath{Path: path, Err: err}
		}
	}()

	inf, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = ErrProgramNotFound
		return
	}
	if err != nil {
		return
	}
	defer inf.Close()

	return parse(inf)
}

// Parse reads a program from its binary text form.
func Parse(input io.Reader) (prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &cpu.ErrSyntax{LineNo: lineno, Line: text, Err: err}
		}
	}()

	prog = &cpu.Program{}
	address := 0

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		code, _, _ := strings.Cut(text, "#")
		code = strings.TrimSpace(code)
		if len(code) == 0 {
			continue
		}

		var value uint8
		value, err = parseByte(code)
		if err != nil {
			return
		}

		if address >= cpu.MEMORY_SIZE {
			err = errors.Join(ErrMalformedProgram, cpu.ErrProgramTooLarge)
			return
		}

		prog.Lines = append(prog.Lines, cpu.Line{
			LineNo:  lineno,
			Address: address,
			Words:   strings.Fields(strings.TrimSpace(text)),
			Bytes:   []uint8{value},
		})
		address++
	}

	err = scanner.Err()
	if err != nil {
		lineno++
		text = ""
		err = errors.Join(ErrMalformedProgram, err)
	}

	return
}

// parseByte parses a binary literal of at most eight digits.
func parseByte(code string) (value uint8, err error) {
	if len(code) > 8 || strings.Trim(code, "01") != "" {
		err = ErrMalformedProgram
		return
	}

	v64, err := strconv.ParseUint(code, 2, 8)
	if err != nil {
		err = ErrMalformedProgram
		return
	}

	value = uint8(v64)
	return
}
