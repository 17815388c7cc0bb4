// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator wraps the rv32 core with the host-facing surface an
// interactive environment drives: load source text, step, observe.
package emulator

import (
	"strings"

	"github.com/ezrec/rv32sim/diag"
	"github.com/ezrec/rv32sim/rv32"
)

const (
	MEM_SIZE = 4096 // Flat data memory capacity, in bytes.
)

// Emulator state. Machine + assembler.
type Emulator struct {
	Verbose       bool // If set, enables verbose assembler logging.
	*rv32.Machine      // Reference to the machine simulation.

	Assembler rv32.Assembler // Assembler reused across loads.
}

// NewEmulator creates a new emulator with the default memory capacity.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: rv32.NewMachine(MEM_SIZE),
	}

	return
}

// SetSink routes every diagnostic from the assembler and the machine to
// sink. A nil sink reverts to the standard logger.
func (emu *Emulator) SetSink(sink diag.Sink) {
	emu.Machine.Report = diag.Reporter{Sink: sink}
	emu.Assembler.Report = diag.Reporter{Sink: sink}
}

// LoadProgram replaces the program from newline-separated source text and
// resets the architectural state.
func (emu *Emulator) LoadProgram(src string) {
	emu.LoadLines(strings.Split(src, "\n"))
}

// LoadLines replaces the program from an ordered sequence of source lines
// and resets the architectural state.
func (emu *Emulator) LoadLines(lines []string) {
	emu.Assembler.Verbose = emu.Verbose
	emu.Machine.Load(emu.Assembler.Assemble(lines))
}

// Line returns the source line for the instruction at the current PC, or
// -1 when the PC is outside the program.
func (emu *Emulator) Line() int {
	return emu.Machine.SourceLine(emu.Pc)
}

// Run steps until the program halts or limit steps have executed, and
// returns the number of completed steps.
func (emu *Emulator) Run(limit int) (steps int) {
	for steps < limit {
		if !emu.Step() {
			return
		}
		steps++
	}

	return
}
