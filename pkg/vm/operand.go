package vm

import "github.com/oisee/corewars/pkg/word"

// operandKind tags the six resolved operand forms a parameter field can
// name: a tagged variant with exhaustive case analysis, not a class
// hierarchy.
type operandKind int

const (
	kindLiteral          operandKind = iota // immediate, read-only
	kindRegisterDirect                      // register, 0 dereferences
	kindRegisterIndirect1                   // register, 1 dereference
	kindRegisterIndirect2                   // register, 2 dereferences
	kindMemoryIndirect1                     // literal offset, 1 dereference
	kindMemoryIndirect2                     // literal offset, 2 dereferences
)

// operand is the resolved location (or immediate value) a parameter field
// names, ready to be read or written without re-deriving its addressing
// mode.
type operand struct {
	kind    operandKind
	literal int32
	regPtr  *uint32
	addr    int
}

func classify(p uint32) operandKind {
	if word.IsRegisterParam(p) {
		switch word.DereferenceCountOf(p) {
		case 0:
			return kindRegisterDirect
		case 1:
			return kindRegisterIndirect1
		default:
			return kindRegisterIndirect2
		}
	}
	switch word.DereferenceCountOf(p) {
	case 0:
		return kindLiteral
	case 1:
		return kindMemoryIndirect1
	default:
		return kindMemoryIndirect2
	}
}

// resolve decodes a 14-bit parameter field into an operand, performing
// whatever memory dereferencing the parameter class requires. pc is the
// address of the instruction being executed (operand offsets are always
// PC-relative).
func resolve(ctx *Context, prog *Program, t *Thread, pc int, p uint32) operand {
	switch classify(p) {
	case kindLiteral:
		return operand{kind: kindLiteral, literal: word.LiteralValueOf(p)}

	case kindRegisterDirect:
		idx := word.RegisterIndexOf(p)
		return operand{kind: kindRegisterDirect, regPtr: t.registerPtr(prog, idx)}

	case kindRegisterIndirect1, kindRegisterIndirect2:
		idx := word.RegisterIndexOf(p)
		regVal := *t.registerPtr(prog, idx)
		offset := word.DataValueOf(regVal)
		addr1 := ctx.Wrap(pc + int(offset))
		if classify(p) == kindRegisterIndirect1 {
			return operand{kind: kindRegisterIndirect1, addr: addr1}
		}
		addr2 := ctx.Wrap(addr1 + int(word.DataValueOf(ctx.Read(addr1))))
		return operand{kind: kindRegisterIndirect2, addr: addr2}

	default: // kindMemoryIndirect1, kindMemoryIndirect2
		offset := word.LiteralValueOf(p)
		addr1 := ctx.Wrap(pc + int(offset))
		if classify(p) == kindMemoryIndirect1 {
			return operand{kind: kindMemoryIndirect1, addr: addr1}
		}
		addr2 := ctx.Wrap(addr1 + int(word.DataValueOf(ctx.Read(addr1))))
		return operand{kind: kindMemoryIndirect2, addr: addr2}
	}
}

// readRaw returns the operand's 32-bit word, as ASSIGN's "value(b)" reads it.
func (o operand) readRaw(ctx *Context) uint32 {
	switch o.kind {
	case kindLiteral:
		return uint32(o.literal)
	case kindRegisterDirect:
		return *o.regPtr
	default:
		return ctx.Read(o.addr)
	}
}

// readData returns the operand interpreted as a sign-extended data value,
// as the arithmetic and comparison opcodes read it.
func (o operand) readData(ctx *Context) int32 {
	switch o.kind {
	case kindLiteral:
		return o.literal
	case kindRegisterDirect:
		return word.DataValueOf(*o.regPtr)
	default:
		return word.DataValueOf(ctx.Read(o.addr))
	}
}

// writeRaw stores a raw 32-bit word into the operand. Writing to a literal
// immediate is illegal and reported as a ThreadFault.
func (o operand) writeRaw(ctx *Context, v uint32) *ThreadFault {
	switch o.kind {
	case kindLiteral:
		return &ThreadFault{Err: ErrWriteToLiteral}
	case kindRegisterDirect:
		*o.regPtr = v
		return nil
	default:
		ctx.Write(o.addr, v)
		return nil
	}
}

// writeData stores v as a data value (DATA-cell encoding, opcode field
// preserved as 0). Writing to a literal immediate is illegal and reported
// as a ThreadFault.
func (o operand) writeData(ctx *Context, v int32) *ThreadFault {
	switch o.kind {
	case kindLiteral:
		return &ThreadFault{Err: ErrWriteToLiteral}
	case kindRegisterDirect:
		*o.regPtr = word.EncodeData(v)
		return nil
	default:
		ctx.Write(o.addr, word.EncodeData(v))
		return nil
	}
}
