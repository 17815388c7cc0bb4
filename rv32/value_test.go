package rv32

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		token string
		value int32
	}{
		{"0", 0},
		{"42", 42},
		{"-1", -1},
		{"2047", 2047},
		{"-2048", -2048},
		{"0x10", 16},
		{"0X10", 16},
		{"-0x10", -16},
		{"0xFFFFFFFF", -1},
		{"0x7fffffff", 2147483647},
		{"0x80000000", -2147483648},
		{"4294967295", -1},
		{"4294967296", 0},
		{"0x123456789", 0x23456789},
		{"", 0},
		{"  12  ", 12},
	}

	for _, entry := range table {
		value, err := ParseNumber(entry.token)
		assert.NoError(err, entry.token)
		assert.Equal(entry.value, value, entry.token)
	}
}

func TestParseNumberBad(t *testing.T) {
	assert := assert.New(t)

	table := []string{
		"zzz",
		"0x",
		"-0x",
		"0xzz",
		"12ab",
		"--4",
		"4.5",
		"0x10000000000000000",
	}

	for _, token := range table {
		value, err := ParseNumber(token)
		assert.Error(err, token)
		assert.Equal(int32(0), value, token)
	}
}

func TestSignExtend12(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		in  int32
		out int32
	}{
		{0, 0},
		{1, 1},
		{2047, 2047},
		{2048, -2048},
		{4095, -1},
		{4096, 0},
		{-1, -1},
		{0x800, -2048},
	}

	for _, entry := range table {
		assert.Equal(entry.out, SignExtend12(entry.in), entry.in)
	}
}

func TestRegisterIndexNumeric(t *testing.T) {
	assert := assert.New(t)

	for n := range 32 {
		index, err := RegisterIndex(fmt.Sprintf("x%d", n))
		assert.NoError(err)
		assert.Equal(n, index)
	}

	// Lowercased before resolution.
	index, err := RegisterIndex("X5")
	assert.NoError(err)
	assert.Equal(5, index)
}

func TestRegisterIndexAbi(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		alias string
		index int
	}{
		{"zero", 0}, {"ra", 1}, {"sp", 2}, {"gp", 3}, {"tp", 4},
		{"t0", 5}, {"t1", 6}, {"t2", 7},
		{"s0", 8}, {"s1", 9},
		{"a0", 10}, {"a1", 11}, {"a2", 12}, {"a3", 13},
		{"a4", 14}, {"a5", 15}, {"a6", 16}, {"a7", 17},
		{"s2", 18}, {"s3", 19}, {"s4", 20}, {"s5", 21},
		{"s6", 22}, {"s7", 23}, {"s8", 24}, {"s9", 25},
		{"s10", 26}, {"s11", 27},
		{"t3", 28}, {"t4", 29}, {"t5", 30}, {"t6", 31},
		{"SP", 2},
	}

	for _, entry := range table {
		index, err := RegisterIndex(entry.alias)
		assert.NoError(err, entry.alias)
		assert.Equal(entry.index, index, entry.alias)
	}
}

func TestRegisterIndexBad(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		token   string
		unknown bool
	}{
		{"x32", false},
		{"x-1", false},
		{"xg", false},
		{"x", false},
		{"q9", true},
		{"fp", true},
		{"", true},
	}

	for _, entry := range table {
		index, err := RegisterIndex(entry.token)
		assert.Error(err, entry.token)
		assert.Equal(0, index, entry.token)

		_, unknown := err.(ErrUnknownRegister)
		assert.Equal(entry.unknown, unknown, entry.token)
	}
}

func TestSplitMemOperand(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		token string
		imm   string
		reg   string
	}{
		{"0(x2)", "0", "x2"},
		{"-4(sp)", "-4", "sp"},
		{"0x10(t0)", "0x10", "t0"},
		{"8( x2 )", "8", "x2"},
		{"(x2)", "", "x2"},
	}

	for _, entry := range table {
		imm, reg, err := SplitMemOperand(entry.token)
		assert.NoError(err, entry.token)
		assert.Equal(entry.imm, imm, entry.token)
		assert.Equal(entry.reg, reg, entry.token)
	}

	for _, token := range []string{"8", "8(x2", "8)x2(", "x2)"} {
		_, _, err := SplitMemOperand(token)
		assert.Error(err, token)
	}
}
