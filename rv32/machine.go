package rv32

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ezrec/rv32sim/diag"
)

// Register count and the ABI indexes the machine itself assigns on reset.
const (
	REGISTER_COUNT = 32
	REG_ZERO       = 0 // Hardwired zero.
	REG_RA         = 1 // Return address.
	REG_SP         = 2 // Stack pointer, reset to the memory capacity.
	REG_GP         = 3 // Global pointer, reset to half the memory capacity.
)

// Machine is the architectural state of the emulator: 32 registers, a byte
// program counter, and a flat little-endian memory. Registers and memory
// mutate only through Step; x0 reads as zero at every observation point.
type Machine struct {
	Reg [REGISTER_COUNT]int32 // Register bank.
	Pc  int32                 // Program counter, in bytes.
	Mem []byte                // Byte-addressable memory.

	Program *Program // Currently loaded program.

	Report diag.Reporter // Diagnostic channel.
}

// NewMachine creates a machine with a specifically sized memory.
func NewMachine(capacity uint) (m *Machine) {
	m = &Machine{
		Mem:     make([]byte, capacity),
		Program: &Program{},
	}
	m.Reset()

	return
}

// Reset re-initializes registers, PC, and memory to the construction state:
// everything zero except sp = capacity and gp = capacity/2.
func (m *Machine) Reset() {
	clear(m.Reg[:])
	clear(m.Mem)
	m.Reg[REG_SP] = int32(len(m.Mem))
	m.Reg[REG_GP] = int32(len(m.Mem) / 2)
	m.Pc = 0
}

// Load installs prog and resets the architectural state.
func (m *Machine) Load(prog *Program) {
	m.Program = prog
	m.Reset()

	m.Report.Core("Program loaded: %v instructions, %v labels.",
		len(prog.Instructions), len(prog.Labels))
}

// MemorySize returns the memory capacity in bytes.
func (m *Machine) MemorySize() int {
	return len(m.Mem)
}

// MemoryBytes returns the memory buffer for observation by a host UI.
// Writing through it is outside the machine's contract.
func (m *Machine) MemoryBytes() []byte {
	return m.Mem
}

// SourceLine returns the source line of the instruction at pc, or -1.
func (m *Machine) SourceLine(pc int32) int {
	return m.Program.SourceLine(pc)
}

// writeReg stores val to register rd. Writes to x0 are discarded.
func (m *Machine) writeReg(rd int, val int32) {
	if rd != REG_ZERO {
		m.Reg[rd] = val
	}
}

// validByte reports whether addr is a legal byte address, with a
// diagnostic when it is not.
func (m *Machine) validByte(addr int32) bool {
	if addr < 0 || int(addr) >= len(m.Mem) {
		m.Report.Warn("Memory access OOB at 0x%x (valid 0..%v)",
			uint32(addr), len(m.Mem)-1)
		return false
	}

	return true
}

// aligned reports whether addr satisfies the access alignment, with a
// diagnostic when it does not.
func (m *Machine) aligned(addr int32, align int32, what string) bool {
	if addr%align != 0 {
		m.Report.Warn("Misaligned %v at 0x%x (align %v)", what, uint32(addr), align)
		return false
	}

	return true
}

// Little-endian memory access. Callers hold the bounds and alignment
// checks; these only move bytes.

func (m *Machine) load8(addr int32) uint8 {
	return m.Mem[addr]
}

func (m *Machine) load16(addr int32) uint16 {
	return binary.LittleEndian.Uint16(m.Mem[addr:])
}

func (m *Machine) load32(addr int32) uint32 {
	return binary.LittleEndian.Uint32(m.Mem[addr:])
}

func (m *Machine) store8(addr int32, v uint8) {
	m.Mem[addr] = v
}

func (m *Machine) store16(addr int32, v uint16) {
	binary.LittleEndian.PutUint16(m.Mem[addr:], v)
}

func (m *Machine) store32(addr int32, v uint32) {
	binary.LittleEndian.PutUint32(m.Mem[addr:], v)
}

// DumpState returns a human-readable snapshot: the PC in hex, all 32
// registers in decimal eight per row, and the first 64 memory words
// reconstructed little-endian.
func (m *Machine) DumpState() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PC=0x%x\n", uint32(m.Pc))

	for i := range REGISTER_COUNT {
		sep := "  "
		if (i+1)%8 == 0 {
			sep = "\n"
		}
		fmt.Fprintf(&sb, "x%02d=%11d%s", i, m.Reg[i], sep)
	}

	sb.WriteString("\nMemory[words 0..63]: ")
	words := min(64, len(m.Mem)/4)
	for w := range words {
		val := m.load32(int32(w) * 4)
		fmt.Fprintf(&sb, "%d(0x%x) ", val, val)
	}
	sb.WriteString("\n")

	return sb.String()
}
