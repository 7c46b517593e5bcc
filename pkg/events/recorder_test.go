package events

import "testing"

func TestRecorderAccumulatesInOrder(t *testing.T) {
	r := NewRecorder()
	r.OnProgramAdded(1, "a")
	r.OnThreadCreated(1, 1)
	r.OnMemWrite(1, 1, 42)
	r.OnThreadTerminated(1, 1)

	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}
	events := r.Events()
	if events[2].Kind != "mem_write" || events[2].Addr != 42 {
		t.Fatalf("events[2] = %+v, want mem_write at addr 42", events[2])
	}
}

func TestNoopListenerSatisfiesInterface(t *testing.T) {
	var l Listener = NoopListener{}
	l.OnProgramAdded(0, "")
	l.OnMemRead(0, 0, 0)
}
