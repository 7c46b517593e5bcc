package vm

import "errors"

// Sentinel causes of thread termination. Each is local to the offending
// thread — none of them abort the match.
var (
	ErrDataFetch      = errors.New("vm: fetched a DATA cell")
	ErrWriteToLiteral = errors.New("vm: write to a literal-immediate operand")
	ErrDivideByZero   = errors.New("vm: division or modulo by zero")
	ErrUnknownOpcode  = errors.New("vm: unknown opcode")
)

// ThreadFault wraps one of the Err* sentinels above. A thread that faults
// terminates; the match continues.
type ThreadFault struct {
	Err error
}

func (f *ThreadFault) Error() string { return f.Err.Error() }
func (f *ThreadFault) Unwrap() error { return f.Err }
