package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oisee/corewars/pkg/asm"
	"github.com/oisee/corewars/pkg/config"
	"github.com/oisee/corewars/pkg/corelog"
	"github.com/oisee/corewars/pkg/events"
	"github.com/oisee/corewars/pkg/match"
	"github.com/oisee/corewars/pkg/report"
	"github.com/oisee/corewars/pkg/tournament"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corewars",
		Short: "Core War — compile, run, and tournament a pool of virus programs",
	}

	cfg := config.Default()

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&cfg.Size, "size", cfg.Size, "memory size (cells)")
	rootCmd.PersistentFlags().IntVar(&cfg.Threads, "threads", cfg.Threads, "max live threads")
	rootCmd.PersistentFlags().IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "cycles to completion")
	rootCmd.PersistentFlags().IntVar(&cfg.Length, "length", cfg.Length, "max program length")
	rootCmd.PersistentFlags().IntVar(&cfg.Distance, "distance", cfg.Distance, "min program distance")
	rootCmd.PersistentFlags().IntVar(&cfg.Viruses, "viruses", cfg.Viruses, "programs per tournament match")
	rootCmd.PersistentFlags().IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "rounds per tournament subset")
	rootCmd.PersistentFlags().IntVar(&cfg.Workers, "workers", cfg.Workers, "tournament worker count (0 = NumCPU)")
	rootCmd.PersistentFlags().StringVar(&cfg.OutputPath, "output", "", "write results as JSON to this path")

	rootCmd.AddCommand(
		verifyCmd(&cfg),
		debugCmd(&cfg),
		runCmd(&cfg),
		tournamentCmd(&cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func verifyCmd(cfg *config.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <program.cw>...",
		Short: "Assemble one or more programs and report compile errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := corelog.Default(cfg.Verbose)
			totalErrors := 0
			for _, path := range args {
				prog, errs := compileFile(path, cfg.Symbols())
				for _, e := range errs {
					fmt.Fprintln(os.Stderr, e.Error())
				}
				totalErrors += len(errs)
				if prog != nil {
					log.Info("compiled", "path", path, "instructions", len(prog.Instructions), "errors", len(errs))
				}
			}
			if totalErrors > 0 {
				return fmt.Errorf("%d compile error(s)", totalErrors)
			}
			fmt.Printf("%d program(s) compiled cleanly\n", len(args))
			return nil
		},
	}
}

func debugCmd(cfg *config.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <program.cw>",
		Short: "Run a single program alone, logging every VM event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, errs := compileFile(args[0], cfg.Symbols())
			if len(errs) > 0 {
				return fmt.Errorf("%q failed to compile: %d error(s)", args[0], len(errs))
			}
			rec := events.NewRecorder()
			entrant := match.Entrant{Name: args[0], Instructions: prog.Instructions, StartOffset: prog.StartOffset}
			results, err := match.Run(cfg.MatchConfig(), []match.Entrant{entrant}, rec)
			if err != nil {
				return err
			}
			fmt.Printf("%d events recorded\n", rec.Len())
			for _, e := range rec.Events() {
				fmt.Printf("%-20s pid=%d tid=%d addr=%d\n", e.Kind, e.PID, e.TID, e.Addr)
			}
			for _, r := range results {
				fmt.Printf("%s: %s\n", r.Name, r.Outcome)
			}
			return nil
		},
	}
}

func runCmd(cfg *config.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.cw>...",
		Short: "Run one match among the given programs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entrants, err := compileEntrants(args, cfg.Symbols())
			if err != nil {
				return err
			}
			results, err := match.Run(cfg.MatchConfig(), entrants, nil)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("%-20s %s\n", r.Name, r.Outcome)
			}
			if cfg.OutputPath != "" {
				if err := report.WriteJSON(cfg.OutputPath, results); err != nil {
					return fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
				}
			}
			return nil
		},
	}
}

func tournamentCmd(cfg *config.Run) *cobra.Command {
	return &cobra.Command{
		Use:   "tournament <program.cw>...",
		Short: "Run every k-subset of the given programs for the configured rounds",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entrants, err := compileEntrants(args, cfg.Symbols())
			if err != nil {
				return err
			}
			standings, rows, err := tournament.Run(cfg.TournamentConfig(), entrants)
			if err != nil {
				return err
			}
			fmt.Printf("%d rounds played\n\n", len(rows))
			fmt.Printf("%-20s %5s %5s %5s %6s\n", "program", "wins", "ties", "loss", "points")
			for _, s := range standings {
				fmt.Printf("%-20s %5d %5d %5d %6d\n", s.Name, s.Wins, s.Ties, s.Losses, s.Points)
			}
			if cfg.OutputPath != "" {
				if err := report.WriteJSON(cfg.OutputPath, standings); err != nil {
					return fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
				}
				fmt.Printf("\nwritten to %s\n", cfg.OutputPath)
			}
			return nil
		},
	}
}

func compileFile(path string, symbols map[string]int) (*asm.Program, []asm.CompileError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []asm.CompileError{{Message: err.Error(), Source: path}}
	}
	lines := strings.Split(string(data), "\n")
	return asm.Assemble(lines, symbols)
}

func compileEntrants(paths []string, symbols map[string]int) ([]match.Entrant, error) {
	entrants := make([]match.Entrant, len(paths))
	for i, path := range paths {
		prog, errs := compileFile(path, symbols)
		if len(errs) > 0 {
			return nil, fmt.Errorf("%q failed to compile: %d error(s)", path, len(errs))
		}
		entrants[i] = match.Entrant{Name: path, Instructions: prog.Instructions, StartOffset: prog.StartOffset}
	}
	return entrants, nil
}

