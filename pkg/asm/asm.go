// Package asm implements the two-pass textual assembler and disassembler
// for corewars source: label resolution, predefined symbols, and the
// mnemonic forms, compiled down to pkg/word instruction words. Statement
// forms are matched by ordered mnemonic precedence, one compiled
// instruction per source line, with errors collected rather than
// aborting the whole assembly.
package asm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oisee/corewars/pkg/word"
)

// CompileError is one line-level assembly failure. The assembler keeps
// going after one, substituting a NOP so line numbering stays intact for
// the rest of the program.
type CompileError struct {
	Line    int
	Source  string
	Message string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Message, e.Source)
}

// Program is a compiled unit: where execution starts and the instruction
// vector, in source-line order.
type Program struct {
	StartOffset  int
	Instructions []uint32
}

// PredefinedSymbols returns the named run-limit constants consultable as
// bare identifiers during operand parsing. OFFSET is handled separately
// since it depends on the current line's address.
func PredefinedSymbols(memSize, maxThreads, maxCycles, maxLength, minDistance, viruses, rounds int) map[string]int {
	return map[string]int{
		"MEM_SIZE":     memSize,
		"MAX_THREADS":  maxThreads,
		"MAX_CYCLES":   maxCycles,
		"MAX_LENGTH":   maxLength,
		"MIN_DISTANCE": minDistance,
		"VIRUSES":      viruses,
		"ROUNDS":       rounds,
	}
}

var keywordPattern = regexp.MustCompile(`^(r\d+|s\d+|jump|if|fork|data|nop)$`)

var labelLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.*)$`)

// Assemble compiles source lines into a Program plus any per-line errors.
// symbols is the predefined symbol table (see PredefinedSymbols); it may be
// nil.
func Assemble(lines []string, symbols map[string]int) (*Program, []CompileError) {
	a := &assembler{symbols: symbols, labels: map[string]int{}}
	return a.run(lines)
}

type assembler struct {
	symbols map[string]int
	labels  map[string]int
}

func (a *assembler) run(lines []string) (*Program, []CompileError) {
	stmts := make([]string, 0, len(lines))
	srcLines := make([]int, 0, len(lines))
	addr := 0

	// Pass 1: strip comments/whitespace, record labels, count addresses.
	for lineNo, raw := range lines {
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := labelLine.FindStringSubmatch(line); m != nil {
			label, rest := m[1], strings.TrimSpace(m[2])
			if err := a.validateLabel(label); err == nil {
				a.labels[label] = addr
			}
			line = rest
		}
		if line == "" {
			continue
		}
		stmts = append(stmts, line)
		srcLines = append(srcLines, lineNo+1)
		addr++
	}

	var errs []CompileError
	instructions := make([]uint32, len(stmts))
	for i, stmt := range stmts {
		instr, err := a.compileLine(stmt, i)
		if err != nil {
			errs = append(errs, CompileError{Line: srcLines[i], Source: stmt, Message: err.Error()})
			instructions[i] = word.Encode(word.NOP, 0, 0)
			continue
		}
		instructions[i] = instr
	}

	start := 0
	if off, ok := a.labels["start"]; ok {
		start = off
	}
	return &Program{StartOffset: start, Instructions: instructions}, errs
}

func (a *assembler) validateLabel(label string) error {
	if keywordPattern.MatchString(label) {
		return fmt.Errorf("label %q collides with a keyword", label)
	}
	if a.symbols != nil {
		if _, ok := a.symbols[label]; ok {
			return fmt.Errorf("label %q collides with a predefined symbol", label)
		}
	}
	return nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}
