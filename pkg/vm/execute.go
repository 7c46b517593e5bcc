package vm

import "github.com/oisee/corewars/pkg/word"

// execute runs exactly one instruction for t, mutating t's registers and
// pc (and prog's shared registers, and ctx's memory) in place. It returns
// a non-nil *ThreadFault when the thread terminates; nil means the thread
// is still alive and its PC has already been advanced.
//
// One exhaustive switch over the opcode, each case a few lines of direct
// register/memory mutation, no intermediate AST or bytecode re-dispatch.
func execute(ctx *Context, prog *Program, t *Thread) *ThreadFault {
	pc := t.PC
	ctx.Listener().OnFetchInstruction(prog.ID, t.ID, pc)
	instr := ctx.Read(pc)
	op := word.OpcodeOf(instr)

	if op == word.DATA {
		return &ThreadFault{Err: ErrDataFetch}
	}

	a := word.AOf(instr)
	b := word.BOf(instr)

	switch op {
	case word.NOP:
		t.PC = ctx.Wrap(pc + 1)
		return nil

	case word.ASSIGN:
		opB := resolve(ctx, prog, t, pc, b)
		val := opB.readRaw(ctx)
		opA := resolve(ctx, prog, t, pc, a)
		if err := opA.writeRaw(ctx, val); err != nil {
			return err
		}
		t.PC = ctx.Wrap(pc + 1)
		return nil

	case word.ADD, word.SUB, word.MUL, word.DIV, word.MOD:
		opA := resolve(ctx, prog, t, pc, a)
		opB := resolve(ctx, prog, t, pc, b)
		va := opA.readData(ctx)
		vb := opB.readData(ctx)
		var result int32
		switch op {
		case word.ADD:
			result = va + vb
		case word.SUB:
			result = va - vb
		case word.MUL:
			result = va * vb
		case word.DIV:
			if vb == 0 {
				return &ThreadFault{Err: ErrDivideByZero}
			}
			result = va / vb
		case word.MOD:
			if vb == 0 {
				return &ThreadFault{Err: ErrDivideByZero}
			}
			result = va % vb
		}
		if err := opA.writeData(ctx, result); err != nil {
			return err
		}
		t.PC = ctx.Wrap(pc + 1)
		return nil

	case word.COMPARE:
		opA := resolve(ctx, prog, t, pc, a)
		opB := resolve(ctx, prog, t, pc, b)
		va := opA.readData(ctx)
		vb := opB.readData(ctx)
		var sign int32
		switch {
		case va < vb:
			sign = -1
		case va > vb:
			sign = 1
		}
		t.Private[0] = word.EncodeData(sign)
		t.PC = ctx.Wrap(pc + 1)
		return nil

	case word.JUMP:
		opB := resolve(ctx, prog, t, pc, b)
		offset := opB.readData(ctx)
		t.PC = ctx.Wrap(pc + int(offset))
		return nil

	case word.JUMP_ZERO, word.JUMP_NOT_ZERO, word.JUMP_LT, word.JUMP_GT:
		opA := resolve(ctx, prog, t, pc, a)
		val := opA.readData(ctx)
		var taken bool
		switch op {
		case word.JUMP_ZERO:
			taken = val == 0
		case word.JUMP_NOT_ZERO:
			taken = val != 0
		case word.JUMP_LT:
			taken = val < 0
		case word.JUMP_GT:
			taken = val > 0
		}
		if taken {
			opB := resolve(ctx, prog, t, pc, b)
			offset := opB.readData(ctx)
			t.PC = ctx.Wrap(pc + int(offset))
		} else {
			t.PC = ctx.Wrap(pc + 1)
		}
		return nil

	case word.DEC_JUMP_NOT_ZERO:
		opA := resolve(ctx, prog, t, pc, a)
		val := opA.readData(ctx) - 1
		if err := opA.writeData(ctx, val); err != nil {
			return err
		}
		if val != 0 {
			opB := resolve(ctx, prog, t, pc, b)
			offset := opB.readData(ctx)
			t.PC = ctx.Wrap(pc + int(offset))
		} else {
			t.PC = ctx.Wrap(pc + 1)
		}
		return nil

	case word.FORK:
		opB := resolve(ctx, prog, t, pc, b)
		offset := opB.readData(ctx)
		newPC := ctx.Wrap(pc + int(offset))
		if prog.createThread(ctx, newPC, t) {
			t.Private[0] = word.EncodeData(1)
		} else {
			t.Private[0] = word.EncodeData(0)
		}
		t.PC = ctx.Wrap(pc + 1)
		return nil

	default:
		return &ThreadFault{Err: ErrUnknownOpcode}
	}
}
