package events

import "sync"

// Event is one recorded listener call, tagged by kind.
type Event struct {
	Kind string
	PID  int
	TID  int
	Addr int
	Name string
}

// Recorder accumulates every event it receives, guarded by a mutex:
// writers take the lock per call, readers take it once and copy out.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Events returns a copy of every event recorded so far, in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) OnProgramAdded(pid int, name string) {
	r.add(Event{Kind: "program_added", PID: pid, Name: name})
}

func (r *Recorder) OnExecutionStarted(memorySnapshot []uint32) {
	r.add(Event{Kind: "execution_started"})
}

func (r *Recorder) OnExecutionCompleted() {
	r.add(Event{Kind: "execution_completed"})
}

func (r *Recorder) OnThreadCreated(pid, tid int) {
	r.add(Event{Kind: "thread_created", PID: pid, TID: tid})
}

func (r *Recorder) OnThreadCreateFailed(pid int) {
	r.add(Event{Kind: "thread_create_failed", PID: pid})
}

func (r *Recorder) OnThreadTerminated(pid, tid int) {
	r.add(Event{Kind: "thread_terminated", PID: pid, TID: tid})
}

func (r *Recorder) OnMemRead(pid, tid, addr int) {
	r.add(Event{Kind: "mem_read", PID: pid, TID: tid, Addr: addr})
}

func (r *Recorder) OnMemWrite(pid, tid, addr int) {
	r.add(Event{Kind: "mem_write", PID: pid, TID: tid, Addr: addr})
}

func (r *Recorder) OnFetchInstruction(pid, tid, addr int) {
	r.add(Event{Kind: "fetch_instruction", PID: pid, TID: tid, Addr: addr})
}

var _ Listener = (*Recorder)(nil)
