// Package script binds an emulator instance to a starlark host, mirroring
// the surface an interactive editor needs: load a program, single-step,
// and observe registers, memory, and source-line mapping.
package script

import (
	"encoding/binary"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/ezrec/rv32sim/emulator"
)

// Module returns a starlark module named "rv32" driving emu. The module
// keeps no state of its own; every call reads or mutates the emulator it
// was built around.
func Module(emu *emulator.Emulator) *starlarkstruct.Module {
	return &starlarkstruct.Module{
		Name: "rv32",
		Members: starlark.StringDict{
			"load_program": starlark.NewBuiltin("load_program", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var src string
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &src); err != nil {
					return nil, err
				}
				emu.LoadProgram(src)
				return starlark.None, nil
			}),

			"step": starlark.NewBuiltin("step", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.Bool(emu.Step()), nil
			}),

			"run": starlark.NewBuiltin("run", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var limit int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &limit); err != nil {
					return nil, err
				}
				return starlark.MakeInt(emu.Run(limit)), nil
			}),

			"dump_state": starlark.NewBuiltin("dump_state", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.String(emu.DumpState()), nil
			}),

			"pc": starlark.NewBuiltin("pc", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(int(emu.Pc)), nil
			}),

			"reg": starlark.NewBuiltin("reg", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var index int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &index); err != nil {
					return nil, err
				}
				if index < 0 || index >= len(emu.Reg) {
					return nil, fmt.Errorf("%v: register index %v out of range", b.Name(), index)
				}
				return starlark.MakeInt(int(emu.Reg[index])), nil
			}),

			"memory_size": starlark.NewBuiltin("memory_size", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
					return nil, err
				}
				return starlark.MakeInt(emu.MemorySize()), nil
			}),

			"memory_word": starlark.NewBuiltin("memory_word", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var addr int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
					return nil, err
				}
				mem := emu.MemoryBytes()
				if addr < 0 || addr+4 > len(mem) {
					return nil, fmt.Errorf("%v: address 0x%x out of range", b.Name(), addr)
				}
				return starlark.MakeInt(int(binary.LittleEndian.Uint32(mem[addr:]))), nil
			}),

			"source_line": starlark.NewBuiltin("source_line", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var pc int
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &pc); err != nil {
					return nil, err
				}
				return starlark.MakeInt(emu.SourceLine(int32(pc))), nil
			}),
		},
	}
}
