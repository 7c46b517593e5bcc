// Package vm implements the execution context, program and thread model:
// circular memory, the global thread counter, listener dispatch, and the
// per-instruction step semantics of the Core War machine.
package vm

import (
	"sync/atomic"

	"github.com/oisee/corewars/pkg/events"
)

// Context owns the circular memory all programs share, the global live-
// thread counter, and dispatches lifecycle/memory events to a listener.
// A single atomic.Int64 tracks live threads so it can be read from a
// listener without locking, even though only one thread ever executes
// at a time.
type Context struct {
	Memory []uint32

	maxThreads int
	live       atomic.Int64
	nextTID    atomic.Int64

	listener events.Listener

	curProgramID int
	curThreadID  int
}

// NewContext allocates a context with the given memory size and thread
// cap. listener may be nil, in which case events.NoopListener is used.
func NewContext(memorySize, maxThreads int, listener events.Listener) *Context {
	if listener == nil {
		listener = events.NoopListener{}
	}
	return &Context{
		Memory:     make([]uint32, memorySize),
		maxThreads: maxThreads,
		listener:   listener,
	}
}

// Size returns the memory size in cells.
func (c *Context) Size() int {
	return len(c.Memory)
}

// Wrap reduces addr modulo the memory size, defined for negative inputs
// too: the result is always in [0, size).
func (c *Context) Wrap(addr int) int {
	size := len(c.Memory)
	r := addr % size
	if r < 0 {
		r += size
	}
	return r
}

// Read returns the cell at addr (wrapped) and emits OnMemRead.
func (c *Context) Read(addr int) uint32 {
	addr = c.Wrap(addr)
	c.listener.OnMemRead(c.curProgramID, c.curThreadID, addr)
	return c.Memory[addr]
}

// Write stores w at addr (wrapped) and emits OnMemWrite.
func (c *Context) Write(addr int, w uint32) {
	addr = c.Wrap(addr)
	c.listener.OnMemWrite(c.curProgramID, c.curThreadID, addr)
	c.Memory[addr] = w
}

// writeSilent stores w at addr without emitting an event. Used for
// placement (loading a program's code into memory), which is setup, not
// gameplay activity a listener should see as a "read/write".
func (c *Context) writeSilent(addr int, w uint32) {
	c.Memory[c.Wrap(addr)] = w
}

// writeBulkSilent writes words starting at base, wrapping as it stores.
func (c *Context) writeBulkSilent(base int, words []uint32) {
	for i, w := range words {
		c.writeSilent(base+i, w)
	}
}

// TryAcquireThread increments the live count if it is strictly below the
// cap, returning whether the acquisition succeeded.
func (c *Context) TryAcquireThread() bool {
	for {
		cur := c.live.Load()
		if cur >= int64(c.maxThreads) {
			return false
		}
		if c.live.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// ReleaseThread decrements the live count, saturating at 0.
func (c *Context) ReleaseThread() {
	for {
		cur := c.live.Load()
		if cur <= 0 {
			return
		}
		if c.live.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// LiveThreads returns the current live-thread count.
func (c *Context) LiveThreads() int {
	return int(c.live.Load())
}

// NewThreadID returns a monotonically increasing thread id.
func (c *Context) NewThreadID() int {
	return int(c.nextTID.Add(1))
}

// SetScope records which (program, thread) is about to execute, so Read
// and Write can tag their events correctly.
func (c *Context) SetScope(programID, threadID int) {
	c.curProgramID = programID
	c.curThreadID = threadID
}

// Listener returns the attached listener.
func (c *Context) Listener() events.Listener {
	return c.listener
}

// Snapshot returns a copy of the memory array, for OnExecutionStarted.
func (c *Context) Snapshot() []uint32 {
	out := make([]uint32, len(c.Memory))
	copy(out, c.Memory)
	return out
}
