package match

import (
	"encoding/json"

	"github.com/oisee/corewars/pkg/events"
	"github.com/oisee/corewars/pkg/vm"
)

// Outcome is one entrant's result at match completion.
type Outcome int

const (
	// Winner is the sole program left with live threads.
	Winner Outcome = iota
	// Tied means two or more programs share live threads at completion.
	Tied
	// Stopped means the program had zero live threads at completion.
	Stopped
)

func (o Outcome) String() string {
	switch o {
	case Winner:
		return "winner"
	case Tied:
		return "tie"
	default:
		return "stopped"
	}
}

// MarshalJSON renders an Outcome as its mnemonic string rather than its
// underlying int, for readable report output.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Result is one entrant's outcome plus its program id, for tournament
// aggregation.
type Result struct {
	ProgramID int
	Name      string
	Outcome   Outcome
}

// Run loads entrants into a fresh context per cfg and drives the cycle loop
// to completion. listener may be nil.
func Run(cfg Config, entrants []Entrant, listener events.Listener) ([]Result, error) {
	if listener == nil {
		listener = events.NoopListener{}
	}
	if err := cfg.Validate(len(entrants)); err != nil {
		return nil, err
	}

	ctx := vm.NewContext(cfg.MemorySize, cfg.MaxThreads, listener)
	placedPrograms, err := place(ctx, cfg, entrants)
	if err != nil {
		return nil, err
	}

	active := make([]*placed, 0, len(placedPrograms))
	for i := range placedPrograms {
		p := &placedPrograms[i]
		listener.OnProgramAdded(p.program.ID, p.program.Name)
		if !p.program.SpawnInitial(ctx) {
			// max_threads < n_programs is already rejected by Validate,
			// so this can only happen if a caller passes an undersized
			// cap some other way; treat it the same as any other
			// resource-exhausted thread.
			continue
		}
		active = append(active, p)
	}

	listener.OnExecutionStarted(ctx.Snapshot())

	for cycle := 0; cycle < cfg.CyclesToCompletion && len(active) > 0; cycle++ {
		p := active[0]
		active = active[1:]
		status := p.program.Step(ctx)
		if status != vm.Drained {
			active = append(active, p)
		}
	}

	listener.OnExecutionCompleted()

	stillActive := map[int]bool{}
	for _, p := range active {
		stillActive[p.program.ID] = true
	}

	results := make([]Result, len(placedPrograms))
	activeCount := len(stillActive)
	for i, p := range placedPrograms {
		var outcome Outcome
		switch {
		case !stillActive[p.program.ID]:
			outcome = Stopped
		case activeCount == 1:
			outcome = Winner
		default:
			outcome = Tied
		}
		results[i] = Result{ProgramID: p.program.ID, Name: p.program.Name, Outcome: outcome}
	}
	return results, nil
}
