// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"maps"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrDefine is a -D argument that is not NAME=VALUE.
type ErrDefine string

func (err ErrDefine) Error() string {
	return f("define '%v' must be NAME=VALUE", string(err))
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var assemble bool
	var list bool
	var defines []string

	rootCmd := &cobra.Command{
		Use:   "ls8 [flags] program",
		Short: "LS-8 emulator, runs a .ls8 program until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cmd.SilenceUsage = true

			path := args[0]

			emu := emulator.NewEmulator()
			emu.Verbose = verbose
			emu.Tape.Output = cmd.OutOrStdout()

			parse := loader.Parse
			if assemble {
				asm := &cpu.Assembler{Verbose: verbose}
				predefine := maps.Collect(emu.Defines())
				for _, define := range defines {
					name, value, ok := strings.Cut(define, "=")
					if !ok || len(name) == 0 {
						return ErrDefine(define)
					}
					predefine[name] = value
				}
				for name, value := range predefine {
					asm.Predefine(name, value)
				}
				parse = asm.Parse
			}

			prog, err := loader.Open(path, parse)
			if err != nil {
				return
			}

			if list {
				if !assemble {
					prog = cpu.Disassemble(prog.Binary())
				}
				return prog.Text(cmd.OutOrStdout())
			}

			emu.Program = prog
			err = emu.Reset()
			if err != nil {
				return &loader.ErrPath{Path: path, Err: err}
			}

			err = emu.Run()
			if err != nil {
				return &loader.ErrPath{Path: path, Err: err}
			}

			return
		},
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode, traces every instruction")
	rootCmd.Flags().BoolVarP(&assemble, "asm", "a", false, "Program is assembler source")
	rootCmd.Flags().BoolVarP(&list, "list", "l", false, "List the program as annotated .ls8 text, do not execute")
	rootCmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "Predefine an assembler constant, as NAME=VALUE")

	return rootCmd
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
