// Package rv32 implements the assembler and stepping interpreter for a
// 32-bit RISC-V integer subset (RV32IM-lite).
//
// The assembler translates textual assembly (labels, comments, and a small
// set of pseudo-instructions) into a linear program of canonical
// instructions. The machine executes that program one instruction at a time
// against 32 general-purpose registers, a byte program counter, and a flat
// little-endian memory, reporting observable conditions through a
// diagnostic sink.
package rv32
