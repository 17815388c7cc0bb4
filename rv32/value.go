package rv32

import (
	"strconv"
	"strings"
)

// abiRegister maps the conventional ABI register names onto indexes 0..31.
var abiRegister = map[string]int{
	// Zero & return
	"zero": 0,
	"ra":   1,
	"sp":   2,
	"gp":   3,
	"tp":   4,

	// Temporaries
	"t0": 5,
	"t1": 6,
	"t2": 7,
	"t3": 28,
	"t4": 29,
	"t5": 30,
	"t6": 31,

	// Saved registers
	"s0":  8,
	"s1":  9,
	"s2":  18,
	"s3":  19,
	"s4":  20,
	"s5":  21,
	"s6":  22,
	"s7":  23,
	"s8":  24,
	"s9":  25,
	"s10": 26,
	"s11": 27,

	// Arguments / return values
	"a0": 10,
	"a1": 11,
	"a2": 12,
	"a3": 13,
	"a4": 14,
	"a5": 15,
	"a6": 16,
	"a7": 17,
}

// ParseNumber parses an integer literal: an optional leading '-', then
// decimal digits or a 0x/0X hex body. Parsing is 64-bit; the low 32 bits
// are reinterpreted as a signed value, wrapping like RV32. An empty token
// is 0.
func ParseNumber(token string) (value int32, err error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return
	}

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}

	if s != "" && (s[0] == '-' || s[0] == '+') {
		err = ErrBadNumber(token)
		return
	}

	v64, perr := strconv.ParseInt(s, base, 64)
	if perr != nil {
		err = ErrBadNumber(token)
		return
	}
	if negative {
		v64 = -v64
	}

	value = int32(uint32(v64))
	return
}

// SignExtend12 reinterprets the low 12 bits of v as a signed value in
// [-2048, 2047].
func SignExtend12(v int32) int32 {
	return (v << 20) >> 20
}

// RegisterIndex resolves a register token to an index in 0..31. The token
// is lowercased; an 'x' prefix takes a decimal index, anything else is an
// ABI alias.
func RegisterIndex(token string) (index int, err error) {
	name := strings.ToLower(strings.TrimSpace(token))

	if strings.HasPrefix(name, "x") {
		index, perr := strconv.Atoi(name[1:])
		if perr != nil || index < 0 || index > 31 {
			return 0, ErrBadRegister(token)
		}
		return index, nil
	}

	index, ok := abiRegister[name]
	if !ok {
		return 0, ErrUnknownRegister(token)
	}

	return index, nil
}

// SplitMemOperand splits an IMM(REG) memory operand into its immediate and
// register texts. Whitespace around the parentheses is tolerated.
func SplitMemOperand(token string) (immText, regText string, err error) {
	lparen := strings.IndexByte(token, '(')
	rparen := strings.IndexByte(token, ')')
	if lparen < 0 || rparen < 0 || rparen < lparen {
		err = ErrBadMemOperand(token)
		return
	}

	immText = strings.TrimSpace(token[:lparen])
	regText = strings.TrimSpace(token[lparen+1 : rparen])
	return
}
