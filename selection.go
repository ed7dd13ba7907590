package main

import (
	"errors"
	"fmt"
)

// ErrNothingSelected is returned when a selection is finished empty.
var ErrNothingSelected = errors.New("no articles selected")

// AutoSelect walks candidates in the given order and accumulates a bundle:
// if adding the next candidate would exceed the upper bound, it is added
// anyway only when the total is still below the lower bound (a single
// overshoot beats ending far under target) and the walk stops; otherwise the
// candidate is added and the walk stops the first time the total enters the
// band. Pass a reversed slice for newest-first selection.
func AutoSelect(candidates []Candidate, target Target) ([]Candidate, int) {
	var selected []Candidate
	total := 0

	for _, c := range candidates {
		if total+c.Meta.WordCount > target.Upper() {
			if total < target.Lower() {
				selected = append(selected, c)
				total += c.Meta.WordCount
			}
			break
		}

		selected = append(selected, c)
		total += c.Meta.WordCount

		if total >= target.Lower() {
			break
		}
	}

	return selected, total
}

// Reversed returns a copy of candidates in the opposite order.
func Reversed(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[len(candidates)-1-i] = c
	}
	return out
}

// Selector accumulates an interactive selection over a fixed candidate list.
// It performs no I/O; Add and Remove return a human-readable note per index
// so the REPL can report duplicate adds, removals of unselected articles and
// out-of-range indices as user errors rather than failures.
type Selector struct {
	candidates []Candidate
	target     Target
	selected   []int // candidate indices (0-based) in pick order
	total      int
}

// NewSelector creates a selector over candidates.
func NewSelector(candidates []Candidate, target Target) *Selector {
	return &Selector{candidates: candidates, target: target}
}

// Add selects the given 1-based indices, skipping ones already selected.
func (s *Selector) Add(indices []int) []string {
	notes := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(s.candidates) {
			notes = append(notes, fmt.Sprintf("Error: Invalid article number %d", idx))
			continue
		}
		if s.isSelected(idx - 1) {
			notes = append(notes, fmt.Sprintf("Article %d already selected.", idx))
			continue
		}
		meta := s.candidates[idx-1].Meta
		s.selected = append(s.selected, idx-1)
		s.total += meta.WordCount
		notes = append(notes, fmt.Sprintf("Added: %s (%d words)", meta.Title, meta.WordCount))
	}
	return notes
}

// Remove deselects the given 1-based indices.
func (s *Selector) Remove(indices []int) []string {
	notes := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 1 || idx > len(s.candidates) {
			notes = append(notes, fmt.Sprintf("Error: Invalid article number %d", idx))
			continue
		}
		pos := -1
		for i, sel := range s.selected {
			if sel == idx-1 {
				pos = i
				break
			}
		}
		if pos < 0 {
			notes = append(notes, fmt.Sprintf("Article %d was not selected.", idx))
			continue
		}
		meta := s.candidates[idx-1].Meta
		s.selected = append(s.selected[:pos], s.selected[pos+1:]...)
		s.total -= meta.WordCount
		notes = append(notes, fmt.Sprintf("Removed: %s (%d words)", meta.Title, meta.WordCount))
	}
	return notes
}

// Finish validates that the selection can terminate.
func (s *Selector) Finish() error {
	if len(s.selected) == 0 {
		return ErrNothingSelected
	}
	return nil
}

// Selected returns the chosen candidates in pick order.
func (s *Selector) Selected() []Candidate {
	out := make([]Candidate, 0, len(s.selected))
	for _, idx := range s.selected {
		out = append(out, s.candidates[idx])
	}
	return out
}

// Total returns the running word count.
func (s *Selector) Total() int {
	return s.total
}

// Count returns how many articles are selected.
func (s *Selector) Count() int {
	return len(s.selected)
}

// Status places the running total in the target band.
func (s *Selector) Status() BandStatus {
	return s.target.Status(s.total)
}

func (s *Selector) isSelected(idx int) bool {
	for _, sel := range s.selected {
		if sel == idx {
			return true
		}
	}
	return false
}
