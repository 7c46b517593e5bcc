package match

import (
	"math/rand/v2"

	"github.com/oisee/corewars/pkg/vm"
)

// Entrant is one compiled program entering a match.
type Entrant struct {
	Name         string
	Instructions []uint32
	StartOffset  int
}

// placed pairs a loaded vm.Program with the base address it was placed at.
type placed struct {
	program *vm.Program
	base    int
}

// place shuffles entrants with a seeded PCG (reproducible given cfg.Seed),
// then lays them out starting at address 0, each subsequent program advancing by at least
// MinProgramDistance plus a uniform random slack, so every pair of starts
// is at least MinProgramDistance apart.
func place(ctx *vm.Context, cfg Config, entrants []Entrant) ([]placed, error) {
	for _, e := range entrants {
		if len(e.Instructions) > cfg.MaxProgramLength {
			return nil, &ProgramTooLong{Name: e.Name, Length: len(e.Instructions), Max: cfg.MaxProgramLength}
		}
	}

	n := len(entrants)
	totalLength := 0
	for _, e := range entrants {
		totalLength += len(e.Instructions)
	}
	freePer := (cfg.MemorySize - totalLength) / n
	if freePer < cfg.MinProgramDistance {
		return nil, &InsufficientDistance{FreePerProgram: freePer, MinDistance: cfg.MinProgramDistance}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xC0DEBA5E))
	order := rng.Perm(n)

	placedPrograms := make([]placed, n)
	base := 0
	for i, idx := range order {
		if i > 0 {
			slack := 0
			span := freePer - cfg.MinProgramDistance
			if span > 0 {
				slack = rng.IntN(span + 1)
			}
			base = ctx.Wrap(base + cfg.MinProgramDistance + slack)
		}
		e := entrants[idx]
		prog := vm.NewProgram(idx, e.Name, e.Instructions, e.StartOffset)
		prog.Place(ctx, base)
		placedPrograms[i] = placed{program: prog, base: base}
	}
	return placedPrograms, nil
}
