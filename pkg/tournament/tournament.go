// Package tournament runs a program pool through all k-subsets, R rounds
// each, and tallies standings: a buffered task channel, a fixed goroutine
// count, atomic progress counters, and a mutex-guarded results structure.
package tournament

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oisee/corewars/pkg/match"
)

// Config controls one tournament run.
type Config struct {
	Match      match.Config // per-match settings (memory size, cycles, etc.)
	MatchSize  int          // k in C(N, k)
	Rounds     int          // R rounds per subset
	NumWorkers int          // defaults to runtime.NumCPU()
	Verbose    bool
}

// Standing is one program's accumulated record across every subset/round
// it took part in.
type Standing struct {
	ProgramID int
	Name      string
	Wins      int
	Ties      int
	Losses    int
	Points    int // win=2, tie=1, loss=0
}

// Row is one round's per-program results, for a progress/replay log.
type Row struct {
	Subset  []int
	Round   int
	Results []match.Result
}

type task struct {
	subsetIdx int
	round     int
	subset    []int
}

// Run enumerates C(len(entrants), cfg.MatchSize) subsets in lexicographic
// order, plays cfg.Rounds matches of each, and returns final standings plus
// the per-round log. N must be >= k. A match that fails to start (a
// configuration or placement error) is skipped without reporting the error:
// it adds no row and changes no standing.
func Run(cfg Config, entrants []match.Entrant) ([]Standing, []Row, error) {
	if cfg.MatchSize > len(entrants) {
		return nil, nil, fmt.Errorf("tournament: match size %d exceeds pool of %d programs", cfg.MatchSize, len(entrants))
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}

	subsets := Subsets(len(entrants), cfg.MatchSize)
	tasks := make([]task, 0, len(subsets)*cfg.Rounds)
	for si, s := range subsets {
		for r := 0; r < cfg.Rounds; r++ {
			tasks = append(tasks, task{subsetIdx: si, round: r, subset: s})
		}
	}

	p := newPool(cfg, entrants, len(tasks))
	p.runTasks(tasks)

	standings := make([]Standing, 0, len(p.standings))
	for _, id := range p.order {
		standings = append(standings, p.standings[id])
	}
	return standings, p.rows, nil
}

type pool struct {
	cfg      Config
	entrants []match.Entrant

	mu        sync.Mutex
	standings map[int]Standing
	order     []int
	rows      []Row

	completed atomic.Int64
}

func newPool(cfg Config, entrants []match.Entrant, totalTasks int) *pool {
	p := &pool{
		cfg:       cfg,
		entrants:  entrants,
		standings: make(map[int]Standing, len(entrants)),
	}
	for i, e := range entrants {
		p.standings[i] = Standing{ProgramID: i, Name: e.Name}
		p.order = append(p.order, i)
	}
	return p
}

func (p *pool) runTasks(tasks []task) {
	ch := make(chan task, len(tasks))
	for _, t := range tasks {
		ch <- t
	}
	close(ch)

	total := int64(len(tasks))
	done := make(chan struct{})
	start := time.Now()
	if p.cfg.Verbose {
		go func() {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					comp := p.completed.Load()
					fmt.Printf("  [%s] %d/%d matches played\n", time.Since(start).Round(time.Second), comp, total)
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range ch {
				p.runTask(t)
				p.completed.Add(1)
			}
		}()
	}
	wg.Wait()
	close(done)
}

func (p *pool) runTask(t task) {
	entrants := make([]match.Entrant, len(t.subset))
	for i, idx := range t.subset {
		entrants[i] = p.entrants[idx]
	}
	cfg := p.cfg.Match
	cfg.Seed = cfg.Seed ^ uint64(t.subsetIdx)<<32 ^ uint64(t.round)

	results, err := match.Run(cfg, entrants, nil)
	if err != nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, res := range results {
		id := t.subset[res.ProgramID]
		s := p.standings[id]
		switch res.Outcome {
		case match.Winner:
			s.Wins++
			s.Points += 2
		case match.Tied:
			s.Ties++
			s.Points++
		case match.Stopped:
			s.Losses++
		}
		p.standings[id] = s
	}
	p.rows = append(p.rows, Row{Subset: t.subset, Round: t.round, Results: results})
}
