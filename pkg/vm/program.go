package vm

// StepStatus reports what a Program's Step call accomplished.
type StepStatus int

const (
	// Idle means the program has no live threads left (it has been
	// eliminated); Step is a no-op.
	Idle StepStatus = iota
	// Progressing means one thread executed one instruction and the
	// program still has at least one live thread.
	Progressing
	// Drained means the program's last thread terminated this call.
	Drained
)

// Program is one contestant's loaded code plus its 16 shared registers and
// the set of threads currently scheduled for it. Threads within a program
// are scheduled round-robin; Program.Step advances exactly one of them per
// call.
type Program struct {
	ID           int
	Name         string
	Instructions []uint32
	StartOffset  int
	Shared       [16]uint32

	threads []*Thread
}

// NewProgram constructs a program from its compiled instruction words.
// startOffset is relative to the first instruction; Place turns it into an
// absolute start address.
func NewProgram(id int, name string, instructions []uint32, startOffset int) *Program {
	return &Program{
		ID:           id,
		Name:         name,
		Instructions: instructions,
		StartOffset:  startOffset,
	}
}

// Place writes the program's instructions into ctx's memory starting at
// base, without emitting memory events (loading is setup, not gameplay).
func (p *Program) Place(ctx *Context, base int) {
	ctx.writeBulkSilent(base, p.Instructions)
	p.StartOffset = ctx.Wrap(base + p.StartOffset)
}

// SpawnInitial creates the program's first thread at its start address and
// registers it with ctx's thread pool. It returns false if the pool is
// already at capacity, which should not happen for a match's initial
// placement but is reported rather than assumed away.
func (p *Program) SpawnInitial(ctx *Context) bool {
	if !ctx.TryAcquireThread() {
		ctx.Listener().OnThreadCreateFailed(p.ID)
		return false
	}
	t := newThread(ctx.NewThreadID(), p.StartOffset)
	p.threads = append(p.threads, t)
	ctx.Listener().OnThreadCreated(p.ID, t.ID)
	return true
}

// createThread implements FORK's create_thread primitive: it tries to
// acquire a slot from ctx's global thread cap and, on success, appends a
// child thread (private registers copied from parent) to p's run queue.
func (p *Program) createThread(ctx *Context, pc int, parent *Thread) bool {
	if !ctx.TryAcquireThread() {
		ctx.Listener().OnThreadCreateFailed(p.ID)
		return false
	}
	child := forkChild(ctx.NewThreadID(), pc, parent)
	p.threads = append(p.threads, child)
	ctx.Listener().OnThreadCreated(p.ID, child.ID)
	return true
}

// LiveThreadCount returns how many threads p still has scheduled.
func (p *Program) LiveThreadCount() int {
	return len(p.threads)
}

// Step pops the head thread from p's FIFO queue, runs one instruction for
// it, and — if it survived — pushes it back to the tail. A thread that
// faults is dropped and its slot released instead.
func (p *Program) Step(ctx *Context) StepStatus {
	if len(p.threads) == 0 {
		return Idle
	}

	t := p.threads[0]
	p.threads = p.threads[1:]
	ctx.SetScope(p.ID, t.ID)

	if fault := execute(ctx, p, t); fault != nil {
		ctx.ReleaseThread()
		ctx.Listener().OnThreadTerminated(p.ID, t.ID)
		if len(p.threads) == 0 {
			return Drained
		}
		return Progressing
	}

	p.threads = append(p.threads, t)
	return Progressing
}
