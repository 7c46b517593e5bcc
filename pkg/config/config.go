// Package config translates CLI flags into match.Config and
// tournament.Config, holding the standard defaults and deferring
// validation to match.Config.Validate at the point of use.
package config

import (
	"github.com/oisee/corewars/pkg/asm"
	"github.com/oisee/corewars/pkg/match"
	"github.com/oisee/corewars/pkg/tournament"
)

// Run bundles the flags common to every corewars sub-command.
type Run struct {
	Size        int
	Threads     int
	Cycles      int
	Length      int
	Distance    int
	Viruses     int
	Rounds      int
	Workers     int
	Seed        uint64
	Verbose     bool
	OutputPath  string
}

// Default returns the standard run configuration.
func Default() Run {
	return Run{
		Size:     8000,
		Threads:  2000,
		Cycles:   80000,
		Length:   100,
		Distance: 100,
		Viruses:  2,
		Rounds:   4,
		Workers:  0,
	}
}

// MatchConfig builds a match.Config from the run flags.
func (r Run) MatchConfig() match.Config {
	return match.Config{
		MemorySize:         r.Size,
		MaxThreads:         r.Threads,
		CyclesToCompletion: r.Cycles,
		MaxProgramLength:   r.Length,
		MinProgramDistance: r.Distance,
		Seed:               r.Seed,
	}
}

// Symbols builds the predefined symbol table an assembled program can refer
// to by name (MEM_SIZE, MAX_THREADS, ...), derived from these same run
// flags so a program's view of the limits matches what it will actually run
// under.
func (r Run) Symbols() map[string]int {
	return asm.PredefinedSymbols(r.Size, r.Threads, r.Cycles, r.Length, r.Distance, r.Viruses, r.Rounds)
}

// TournamentConfig builds a tournament.Config from the run flags.
func (r Run) TournamentConfig() tournament.Config {
	return tournament.Config{
		Match:      r.MatchConfig(),
		MatchSize:  r.Viruses,
		Rounds:     r.Rounds,
		NumWorkers: r.Workers,
		Verbose:    r.Verbose,
	}
}
