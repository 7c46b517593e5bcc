package match

import (
	"testing"

	"github.com/oisee/corewars/pkg/asm"
)

func compile(t *testing.T, src []string) asm.Program {
	t.Helper()
	prog, errs := asm.Assemble(src, nil)
	if len(errs) != 0 {
		t.Fatalf("assemble: %v", errs)
	}
	return *prog
}

// TestStuckNopMatch: a lone "nop; jump start" program should still hold
// its thread after the cycle budget and be reported the winner.
func TestStuckNopMatch(t *testing.T) {
	prog := compile(t, []string{"start: nop", "jump start"})
	cfg := Config{MemorySize: 256, MaxThreads: 10, CyclesToCompletion: 10, MaxProgramLength: 10, MinProgramDistance: 0}
	results, err := Run(cfg, []Entrant{{Name: "stuck", Instructions: prog.Instructions, StartOffset: prog.StartOffset}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Outcome != Winner {
		t.Fatalf("results = %+v, want single Winner", results)
	}
}

// TestSelfDestructMatch: a program that jumps straight into a DATA cell
// terminates immediately and the match ends with no active programs.
func TestSelfDestructMatch(t *testing.T) {
	prog := compile(t, []string{
		"start: jump data_cell",
		"data_cell: data 0",
	})
	cfg := Config{MemorySize: 256, MaxThreads: 10, CyclesToCompletion: 10, MaxProgramLength: 10, MinProgramDistance: 0}
	results, err := Run(cfg, []Entrant{{Name: "suicide", Instructions: prog.Instructions, StartOffset: prog.StartOffset}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 || results[0].Outcome != Stopped {
		t.Fatalf("results = %+v, want single Stopped", results)
	}
}

// TestDivideByZeroMatch: DIV by zero terminates the only thread; the
// program has stopped.
func TestDivideByZeroMatch(t *testing.T) {
	prog := compile(t, []string{
		"start: r1 = 5",
		"r1 /= 0",
		"jump start",
	})
	cfg := Config{MemorySize: 256, MaxThreads: 10, CyclesToCompletion: 10, MaxProgramLength: 10, MinProgramDistance: 0}
	results, err := Run(cfg, []Entrant{{Name: "divzero", Instructions: prog.Instructions, StartOffset: prog.StartOffset}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Outcome != Stopped {
		t.Fatalf("outcome = %v, want Stopped", results[0].Outcome)
	}
}

// TestForkBombCap runs a self-forking program under a 5-thread cap and
// checks it reports as Winner (it always has at least one live thread).
func TestForkBombCap(t *testing.T) {
	prog := compile(t, []string{
		"start: fork start",
		"jump start",
	})
	cfg := Config{MemorySize: 256, MaxThreads: 5, CyclesToCompletion: 200, MaxProgramLength: 10, MinProgramDistance: 0}
	results, err := Run(cfg, []Entrant{{Name: "forkbomb", Instructions: prog.Instructions, StartOffset: prog.StartOffset}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Outcome != Winner {
		t.Fatalf("outcome = %v, want Winner", results[0].Outcome)
	}
}

// TestConfigValidation rejects an undersized thread cap before any
// placement is attempted.
func TestConfigValidation(t *testing.T) {
	cfg := Config{MemorySize: 256, MaxThreads: 1, CyclesToCompletion: 10, MaxProgramLength: 10, MinProgramDistance: 0}
	_, err := Run(cfg, []Entrant{{Name: "a"}, {Name: "b"}}, nil)
	if err == nil {
		t.Fatal("expected ConfigError for max_threads < n_programs")
	}
}

// TestInsufficientDistance rejects placement when the memory cannot fit
// the requested minimum distance between programs.
func TestInsufficientDistance(t *testing.T) {
	cfg := Config{MemorySize: 256, MaxThreads: 10, CyclesToCompletion: 10, MaxProgramLength: 10, MinProgramDistance: 200}
	entrants := []Entrant{
		{Name: "a", Instructions: []uint32{0}},
		{Name: "b", Instructions: []uint32{0}},
	}
	_, err := Run(cfg, entrants, nil)
	if err == nil {
		t.Fatal("expected InsufficientDistance error")
	}
}

// TestTwoSelfOverwritingProgramsComplete runs two copies of a program that
// writes a DATA cell one ahead of itself (over its own jump) and checks the
// match completes without error and reports a result for both entrants.
func TestTwoSelfOverwritingProgramsComplete(t *testing.T) {
	prog := compile(t, []string{
		"loop: @1 = 0",
		"jump loop",
	})
	cfg := Config{MemorySize: 256, MaxThreads: 10, CyclesToCompletion: 10000, MaxProgramLength: 10, MinProgramDistance: 100, Seed: 42}
	entrants := []Entrant{
		{Name: "a", Instructions: prog.Instructions, StartOffset: prog.StartOffset},
		{Name: "b", Instructions: prog.Instructions, StartOffset: prog.StartOffset},
	}
	results, err := Run(cfg, entrants, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
}
