package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ErrSelectionCancelled aborts the whole bundling run; nothing is written.
var ErrSelectionCancelled = errors.New("selection cancelled")

type commandKind int

const (
	cmdAdd commandKind = iota
	cmdRemove
	cmdDone
	cmdQuit
	cmdInvalid
)

type command struct {
	kind    commandKind
	indices []int
	bad     []string // tokens that failed to parse as numbers
}

// parseCommand interprets one input line. A line with no valid indices at
// all (and that is not done/quit) is a format error; bad tokens next to
// valid ones are carried so the loop can report them individually while
// still processing the rest.
func parseCommand(line string) command {
	line = strings.ToLower(strings.TrimSpace(line))

	switch line {
	case "done":
		return command{kind: cmdDone}
	case "quit":
		return command{kind: cmdQuit}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{kind: cmdInvalid}
	}

	kind := cmdAdd
	if fields[0] == "r" {
		kind = cmdRemove
		fields = fields[1:]
	}

	cmd := command{kind: kind}
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			cmd.bad = append(cmd.bad, f)
			continue
		}
		cmd.indices = append(cmd.indices, n)
	}

	if len(cmd.indices) == 0 {
		return command{kind: cmdInvalid}
	}
	return cmd
}

// SelectInteractive runs the guided selection loop: it lists all candidates,
// accepts add/remove/done/quit commands, and redisplays the running total
// after every mutation. It returns ErrSelectionCancelled on quit or when
// input ends.
func SelectInteractive(scanner *bufio.Scanner, out io.Writer, candidates []Candidate, target Target) ([]Candidate, error) {
	divider := strings.Repeat("=", 80)

	fmt.Fprintln(out, "\n"+divider)
	fmt.Fprintln(out, "KINDLE BUNDLE ARTICLE SELECTION")
	fmt.Fprintf(out, "Target word count: %d words\n", target.Words)
	fmt.Fprintf(out, "Tolerance: ±10%% (%d - %d words)\n", target.Lower(), target.Upper())
	fmt.Fprintln(out, divider)

	fmt.Fprintf(out, "\nAvailable articles (%d total):\n\n", len(candidates))
	fmt.Fprintln(out, renderCandidateTable(candidates))

	fmt.Fprintln(out, "\n"+divider)
	fmt.Fprintln(out, "SELECTION INSTRUCTIONS:")
	fmt.Fprintln(out, "  - Enter article numbers (space-separated) to add: e.g., '1 3 5'")
	fmt.Fprintln(out, "  - Enter 'r <numbers>' to remove: e.g., 'r 3'")
	fmt.Fprintln(out, "  - Enter 'done' to finish selection")
	fmt.Fprintln(out, "  - Enter 'quit' to cancel")
	fmt.Fprintln(out, divider)

	selector := NewSelector(candidates, target)

	for {
		printSelectionStatus(out, selector, target)
		fmt.Fprint(out, "\nEnter selection: ")

		if !scanner.Scan() {
			return nil, ErrSelectionCancelled
		}

		cmd := parseCommand(scanner.Text())
		switch cmd.kind {
		case cmdDone:
			if err := selector.Finish(); err != nil {
				fmt.Fprintln(out, "Error: No articles selected. Please select at least one article.")
				continue
			}
			fmt.Fprintf(out, "\nFinal selection: %d articles, %d words\n", selector.Count(), selector.Total())
			return selector.Selected(), nil

		case cmdQuit:
			fmt.Fprintln(out, "Selection cancelled.")
			return nil, ErrSelectionCancelled

		case cmdAdd:
			reportBadTokens(out, cmd.bad)
			for _, note := range selector.Add(cmd.indices) {
				fmt.Fprintln(out, note)
			}

		case cmdRemove:
			reportBadTokens(out, cmd.bad)
			for _, note := range selector.Remove(cmd.indices) {
				fmt.Fprintln(out, note)
			}

		default:
			fmt.Fprintln(out, "Error: Invalid input. Enter article numbers or 'done'/'quit'")
		}
	}
}

func reportBadTokens(out io.Writer, bad []string) {
	for _, tok := range bad {
		fmt.Fprintf(out, "Error: Invalid number %q\n", tok)
	}
}

func printSelectionStatus(out io.Writer, selector *Selector, target Target) {
	if selector.Count() == 0 {
		fmt.Fprintln(out, "\nNo articles selected yet.")
		return
	}

	fmt.Fprintf(out, "\nCurrently selected: %d articles, %d words\n", selector.Count(), selector.Total())
	fmt.Fprintf(out, "Progress: %.1f%% of target\n", target.Percent(selector.Total()))

	switch selector.Status() {
	case BelowBand:
		fmt.Fprintln(out, "Status: Below target range (add more articles)")
	case AboveBand:
		fmt.Fprintln(out, "Status: Above target range (consider removing articles)")
	default:
		fmt.Fprintln(out, "Status: Within target range ±10%")
	}
}

func renderCandidateTable(candidates []Candidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Words", "Date", "Title"})

	for i, c := range candidates {
		tw.AppendRow(table.Row{i + 1, c.Meta.WordCount, c.Meta.Date, truncateTitle(c.Meta.Title, 50)})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// truncateTitle shortens long titles for single-line display. It counts and
// cuts on runes so a multibyte title is never split mid-character.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max-3]) + "..."
}
