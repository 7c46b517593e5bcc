package asm

import (
	"fmt"
	"strings"

	"github.com/oisee/corewars/pkg/word"
)

// Disassemble renders w as source text that would reassemble to the same
// instruction word.
func Disassemble(w uint32) string {
	op := word.OpcodeOf(w)
	a := word.AOf(w)
	b := word.BOf(w)

	switch op {
	case word.DATA:
		return fmt.Sprintf("data %d", word.DataValueOf(w))
	case word.NOP:
		return "nop"
	case word.ASSIGN:
		return fmt.Sprintf("%s = %s", operandText(a), operandText(b))
	case word.ADD:
		return fmt.Sprintf("%s += %s", operandText(a), operandText(b))
	case word.SUB:
		return fmt.Sprintf("%s -= %s", operandText(a), operandText(b))
	case word.MUL:
		return fmt.Sprintf("%s *= %s", operandText(a), operandText(b))
	case word.DIV:
		return fmt.Sprintf("%s /= %s", operandText(a), operandText(b))
	case word.MOD:
		return fmt.Sprintf("%s %%= %s", operandText(a), operandText(b))
	case word.COMPARE:
		return fmt.Sprintf("%s <=> %s", operandText(a), operandText(b))
	case word.JUMP:
		return fmt.Sprintf("jump %s", operandText(b))
	case word.JUMP_ZERO:
		return fmt.Sprintf("jump %s if %s == 0", operandText(b), operandText(a))
	case word.JUMP_NOT_ZERO:
		return fmt.Sprintf("jump %s if %s != 0", operandText(b), operandText(a))
	case word.JUMP_LT:
		return fmt.Sprintf("jump %s if %s < 0", operandText(b), operandText(a))
	case word.JUMP_GT:
		return fmt.Sprintf("jump %s if %s > 0", operandText(b), operandText(a))
	case word.DEC_JUMP_NOT_ZERO:
		return fmt.Sprintf("jump %s if --%s != 0", operandText(b), operandText(a))
	case word.FORK:
		return fmt.Sprintf("fork %s", operandText(b))
	default:
		return fmt.Sprintf("; reserved opcode %d", op)
	}
}

func operandText(p uint32) string {
	derefs := strings.Repeat("@", word.DereferenceCountOf(p))
	if word.IsRegisterParam(p) {
		idx := word.RegisterIndexOf(p)
		if idx <= 16 {
			return fmt.Sprintf("%sr%d", derefs, idx)
		}
		return fmt.Sprintf("%ss%d", derefs, idx-16)
	}
	if word.DereferenceCountOf(p) == 0 {
		return fmt.Sprintf("%d", word.LiteralValueOf(p))
	}
	return fmt.Sprintf("%s%d", derefs, word.LiteralValueOf(p))
}
