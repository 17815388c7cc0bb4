package rv32

import (
	"github.com/ezrec/rv32sim/diag"
)

var f = diag.From

type ErrBadNumber string

func (err ErrBadNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrBadRegister string

func (err ErrBadRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrUnknownRegister string

func (err ErrUnknownRegister) Error() string {
	return f("'%v' is not a known register name", string(err))
}

type ErrBadMemOperand string

func (err ErrBadMemOperand) Error() string {
	return f("'%v' is not an IMM(REG) operand", string(err))
}

type ErrBadExpression string

func (err ErrBadExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
