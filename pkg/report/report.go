// Package report persists match and tournament results: a JSON rendering
// for human/CLI consumption, mutex-guarded accumulation while a
// tournament is running, and a gob checkpoint for resuming a long run.
package report

import (
	"encoding/gob"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/oisee/corewars/pkg/tournament"
)

// Standings accumulates tournament.Standing rows as rounds complete,
// exposing a snapshot sorted by points (descending).
type Standings struct {
	mu   sync.Mutex
	rows map[int]tournament.Standing
}

// NewStandings creates an empty accumulator.
func NewStandings() *Standings {
	return &Standings{rows: make(map[int]tournament.Standing)}
}

// Merge folds in one program's standing, summing counters for any id seen
// more than once (e.g. across tournament re-runs against different pools).
func (s *Standings) Merge(st tournament.Standing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[st.ProgramID]
	if !ok {
		s.rows[st.ProgramID] = st
		return
	}
	cur.Wins += st.Wins
	cur.Ties += st.Ties
	cur.Losses += st.Losses
	cur.Points += st.Points
	s.rows[st.ProgramID] = cur
}

// Snapshot returns all standings sorted by points descending, ties broken
// by wins descending then name.
func (s *Standings) Snapshot() []tournament.Standing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]tournament.Standing, 0, len(s.rows))
	for _, st := range s.rows {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WriteJSON renders v (standings, rows, or any report shape) as indented
// JSON to path.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Checkpoint holds enough state to resume a tournament that was interrupted
// partway through its round list.
type Checkpoint struct {
	Standings      []tournament.Standing
	Rows           []tournament.Row
	CompletedTasks int
}

func init() {
	gob.Register(tournament.Standing{})
	gob.Register(tournament.Row{})
}

// SaveCheckpoint writes ckpt to path via gob.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}
