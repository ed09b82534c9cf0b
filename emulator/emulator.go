// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

const (
	ROM_SIZE = cpu.MEMORY_SIZE // Largest bootable image.
)

var _emulator_defines = map[string]string{
	"ROM_SIZE": fmt.Sprintf("%v", ROM_SIZE),
}

// Emulator state. CPU + program listing + devices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Rom  io.Rom  // Boot image, copied into memory on reset.
	Tape io.Tape // Console for PRN and PRA.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.Console = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Tape.Defines(),
	)
}

// Reset the emulator, and boot the current program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Rom.Data = emu.Program.Binary()
	if emu.Rom.Len() > ROM_SIZE {
		err = cpu.ErrProgramTooLarge
		return
	}

	emu.Tape.Rewind()

	err = emu.Cpu.Reset(emu.Rom.Bytes())
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: booted %d bytes", emu.Rom.Len())
	}

	return
}

// Code returns the opcode at the current PC.
func (emu *Emulator) Code() (op cpu.Opcode, err error) {
	value, err := emu.Cpu.Memory.Read(emu.Cpu.Pc)
	if err != nil {
		return
	}

	op = cpu.Opcode(value)
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if !emu.Cpu.Running {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks\n%v", emu.Cpu.Ticks, emu.Cpu)
	}

	return
}
