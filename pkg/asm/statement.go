package asm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oisee/corewars/pkg/word"
)

var (
	reNop        = regexp.MustCompile(`^nop$`)
	reJumpDecNZ  = regexp.MustCompile(`^jump\s+(\S+)\s+if\s+--(\S+)\s*!=\s*0$`)
	reJumpCond   = regexp.MustCompile(`^jump\s+(\S+)\s+if\s+(\S+)\s*(==|!=|<|>)\s*0$`)
	reJump       = regexp.MustCompile(`^jump\s+(\S+)$`)
	reFork       = regexp.MustCompile(`^fork\s+(\S+)$`)
	reCompare    = regexp.MustCompile(`^(\S+)\s*<=>\s*(\S+)$`)
	reAssignLike = regexp.MustCompile(`^(\S+)\s*(\+=|-=|\*=|/=|%=|=)\s*(\S+)$`)
	reData       = regexp.MustCompile(`^data\s+(\S+)$`)
)

// compileLine matches one statement form (first match wins, by mnemonic
// precedence) and produces its instruction word. addr is the
// statement's own address, for PC-relative label/expression resolution.
func (a *assembler) compileLine(stmt string, addr int) (uint32, error) {
	switch {
	case reNop.MatchString(stmt):
		return word.Encode(word.NOP, 0, 0), nil

	case reJumpDecNZ.MatchString(stmt):
		m := reJumpDecNZ.FindStringSubmatch(stmt)
		target, err := a.parseOperand(m[2], addr)
		if err != nil {
			return 0, err
		}
		dest, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		return word.Encode(word.DEC_JUMP_NOT_ZERO, target, dest), nil

	case reJumpCond.MatchString(stmt):
		m := reJumpCond.FindStringSubmatch(stmt)
		val, err := a.parseOperand(m[2], addr)
		if err != nil {
			return 0, err
		}
		dest, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		var op word.Opcode
		switch m[3] {
		case "==":
			op = word.JUMP_ZERO
		case "!=":
			op = word.JUMP_NOT_ZERO
		case "<":
			op = word.JUMP_LT
		case ">":
			op = word.JUMP_GT
		}
		return word.Encode(op, val, dest), nil

	case reJump.MatchString(stmt):
		m := reJump.FindStringSubmatch(stmt)
		dest, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		return word.Encode(word.JUMP, 0, dest), nil

	case reFork.MatchString(stmt):
		m := reFork.FindStringSubmatch(stmt)
		dest, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		return word.Encode(word.FORK, 0, dest), nil

	case reCompare.MatchString(stmt):
		m := reCompare.FindStringSubmatch(stmt)
		lhs, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		rhs, err := a.parseOperand(m[2], addr)
		if err != nil {
			return 0, err
		}
		return word.Encode(word.COMPARE, lhs, rhs), nil

	case reAssignLike.MatchString(stmt):
		m := reAssignLike.FindStringSubmatch(stmt)
		lhs, err := a.parseOperand(m[1], addr)
		if err != nil {
			return 0, err
		}
		rhs, err := a.parseOperand(m[3], addr)
		if err != nil {
			return 0, err
		}
		var op word.Opcode
		switch m[2] {
		case "=":
			op = word.ASSIGN
		case "+=":
			op = word.ADD
		case "-=":
			op = word.SUB
		case "*=":
			op = word.MUL
		case "/=":
			op = word.DIV
		case "%=":
			op = word.MOD
		}
		return word.Encode(op, lhs, rhs), nil

	case reData.MatchString(stmt):
		m := reData.FindStringSubmatch(stmt)
		v, err := a.parseExpr(m[1], addr)
		if err != nil {
			return 0, err
		}
		return word.EncodeData(int32(v)), nil

	default:
		return 0, fmt.Errorf("unrecognized statement form")
	}
}

var reRegister = regexp.MustCompile(`^(@{0,2})(r|s)(\d{1,2})$`)

// parseOperand parses one `@`-prefixed operand into its encoded 14-bit
// parameter field: a register reference or a literal/label expression.
func (a *assembler) parseOperand(tok string, addr int) (uint32, error) {
	if m := reRegister.FindStringSubmatch(tok); m != nil {
		deref := len(m[1])
		kind, numStr := m[2], m[3]
		var n int
		fmt.Sscanf(numStr, "%d", &n)
		if n < 1 || n > 16 {
			return 0, fmt.Errorf("register number %d out of range 1..16 in %q", n, tok)
		}
		index := n
		if kind == "s" {
			index = n + 16
		}
		return word.EncodeRegisterParam(index, deref)
	}

	deref := 0
	rest := tok
	for strings.HasPrefix(rest, "@") {
		deref++
		rest = rest[1:]
	}
	v, err := a.parseExpr(rest, addr)
	if err != nil {
		return 0, err
	}
	return word.EncodeLiteralParam(int32(v), deref)
}

// parseExpr resolves a numeric expression: decimal, 0x-hex, a predefined
// symbol, OFFSET (the current address), or a label (PC-relative:
// address(label) - addr).
func (a *assembler) parseExpr(expr string, addr int) (int, error) {
	if expr == "OFFSET" {
		return addr, nil
	}
	if v, ok := a.symbols[expr]; ok {
		return v, nil
	}
	if labelAddr, ok := a.labels[expr]; ok {
		return labelAddr - addr, nil
	}
	if strings.HasPrefix(expr, "0x") || strings.HasPrefix(expr, "0X") {
		var v int64
		_, err := fmt.Sscanf(expr[2:], "%x", &v)
		if err != nil {
			return 0, fmt.Errorf("bad hex literal %q", expr)
		}
		return int(v), nil
	}
	var v int
	if _, err := fmt.Sscanf(expr, "%d", &v); err != nil {
		return 0, fmt.Errorf("unresolved symbol or malformed literal %q", expr)
	}
	return v, nil
}
