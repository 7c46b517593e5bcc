package match

import "fmt"

// ProgramTooLong is raised during placement when a program's instruction
// vector exceeds the configured max length.
type ProgramTooLong struct {
	Name   string
	Length int
	Max    int
}

func (e *ProgramTooLong) Error() string {
	return fmt.Sprintf("match: program %q has length %d, exceeds max %d", e.Name, e.Length, e.Max)
}

// InsufficientDistance is raised during placement when the available
// memory cannot guarantee min_program_distance between every pair of
// programs.
type InsufficientDistance struct {
	FreePerProgram int
	MinDistance    int
}

func (e *InsufficientDistance) Error() string {
	return fmt.Sprintf("match: only %d free cells per program, need min_program_distance %d", e.FreePerProgram, e.MinDistance)
}
