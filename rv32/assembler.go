// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package rv32

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rv32sim/diag"
)

// Assembler translates source lines into a Program. Parse problems never
// abort a load; they are reported to the diagnostic sink and the offending
// piece is substituted or skipped, so the returned program is always usable.
type Assembler struct {
	Verbose bool          // If set, verbosely logs the assembler actions.
	Report  diag.Reporter // Diagnostic channel.
}

// Assemble lexes and expands an ordered sequence of source lines into a
// fresh program. Labels bind to 4 times the instruction count at the point
// of definition; a trailing label binds one past the end.
func (asm *Assembler) Assemble(lines []string) (prog *Program) {
	prog = &Program{
		Labels: make(map[string]int32, 16),
	}

	for lineno, text := range lines {
		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line := strings.TrimSpace(text)
		if line == "" || line[0] == '#' {
			continue
		}
		if comment := strings.IndexByte(line, '#'); comment >= 0 {
			line = strings.TrimSpace(line[:comment])
		}
		if line == "" {
			continue
		}

		line = asm.expandExpressions(line, lineno)

		for {
			colon := strings.IndexByte(line, ':')
			if colon < 0 {
				break
			}
			label := strings.TrimSpace(line[:colon])
			if label != "" {
				addr := prog.Size()
				prog.Labels[label] = addr
				asm.Report.Label("%v bound at byte %v", label, addr)
			}
			line = strings.TrimSpace(line[colon+1:])
		}
		if line == "" {
			continue
		}

		inst := lexInstruction(line, lineno)
		prog.Instructions = append(prog.Instructions, asm.expandPseudo(inst)...)
	}

	return
}

// lexInstruction splits one instruction body into an uppercased opcode and
// comma/whitespace-separated operand tokens.
func lexInstruction(line string, lineno int) (inst Instruction) {
	opcode := line
	var tail string
	if sep := strings.IndexAny(line, " \t"); sep >= 0 {
		opcode, tail = line[:sep], line[sep+1:]
	}

	tail = strings.ReplaceAll(tail, ",", " ")

	inst = Instruction{
		Op:   strings.ToUpper(opcode),
		Args: strings.Fields(tail),
		Line: lineno,
	}

	return
}

// expandPseudo rewrites pseudo-instructions into canonical one- or
// two-instruction sequences. LA stays a pseudo and is resolved at execute
// time, once labels later in the source are known. Expanded instructions
// inherit the source line of their pseudo.
func (asm *Assembler) expandPseudo(inst Instruction) []Instruction {
	switch inst.Op {
	case "MV":
		if len(inst.Args) == 2 {
			return []Instruction{
				{Op: "ADDI", Args: []string{inst.Args[0], inst.Args[1], "0"}, Line: inst.Line},
			}
		}
	case "LI":
		if len(inst.Args) == 2 {
			return asm.expandLi(inst)
		}
	case "J":
		if len(inst.Args) == 1 {
			return []Instruction{
				{Op: "JAL", Args: []string{"x0", inst.Args[0]}, Line: inst.Line},
			}
		}
	case "JR":
		if len(inst.Args) == 1 {
			return []Instruction{
				{Op: "JALR", Args: []string{"x0", "0(" + inst.Args[0] + ")"}, Line: inst.Line},
			}
		}
	case "RET":
		return []Instruction{
			{Op: "JALR", Args: []string{"x0", "0(x1)"}, Line: inst.Line},
		}
	}

	return []Instruction{inst}
}

// expandLi expands LI to a single ADDI when the value fits 12 signed bits,
// or to a LUI/ADDI pair carrying the rounded upper part and the
// sign-adjusted lower part.
func (asm *Assembler) expandLi(inst Instruction) []Instruction {
	rd := inst.Args[0]

	imm, err := ParseNumber(inst.Args[1])
	if err != nil {
		asm.Report.Error("Bad immediate: %v", inst.Args[1])
	}

	if imm >= -2048 && imm <= 2047 {
		return []Instruction{
			{Op: "ADDI", Args: []string{rd, "x0", decimal(imm)}, Line: inst.Line},
		}
	}

	upper, lower := splitUpperLower(imm)
	return []Instruction{
		{Op: "LUI", Args: []string{rd, decimal(upper)}, Line: inst.Line},
		{Op: "ADDI", Args: []string{rd, rd, decimal(lower)}, Line: inst.Line},
	}
}

// splitUpperLower splits value so that (upper << 12) + lower == value, with
// lower held to [-2048, 2047]. The upper part is computed in unsigned
// 32-bit arithmetic, wrapping like RV32.
func splitUpperLower(value int32) (upper, lower int32) {
	upper = int32((uint32(value) + 0x800) >> 12)
	lower = int32(uint32(value) & 0xFFF)
	if lower&0x800 != 0 {
		lower -= 0x1000
	}

	return
}

func decimal(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// expandExpressions does load-time $(...) evaluations.
func (asm *Assembler) expandExpressions(line string, lineno int) string {
	if !strings.Contains(line, "$(") {
		return line
	}

	return exprPattern.ReplaceAllStringFunc(line, func(str string) string {
		value, err := evalExpression(str[2 : len(str)-1])
		if err != nil {
			asm.Report.Warn("Bad expression %v on line %v", str, lineno)
			return "0"
		}
		return decimal(value)
	})
}

// evalExpression evaluates a starlark expression to a 32-bit value.
func evalExpression(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, starlark.StringDict{})
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrBadExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrBadExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrBadExpression(expr)
		return
	}
	value = int32(uint32(st_int64))
	return
}
