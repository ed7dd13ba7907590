package main

import "time"

// Metadata holds the fields derived from an article file. Nothing here is
// stored redundantly in the article itself; it is recomputed on every read.
type Metadata struct {
	Title     string
	WordCount int
	Date      string    // display date, YYYY-MM-DD
	MTime     time.Time // ordering only, never displayed
}

// Candidate pairs an article path with its derived metadata. The path is the
// article's identity.
type Candidate struct {
	Path string
	Meta Metadata
}

// Target is an immutable word-count goal for a bundle, with a tolerance band
// of ±10% around it.
type Target struct {
	Words int
}

// Lower returns the bottom of the tolerance band (90% of target).
func (t Target) Lower() int {
	return int(float64(t.Words) * 0.9)
}

// Upper returns the top of the tolerance band (110% of target).
func (t Target) Upper() int {
	return int(float64(t.Words) * 1.1)
}

// BandStatus places a running word total relative to the target band.
type BandStatus int

const (
	BelowBand BandStatus = iota
	WithinBand
	AboveBand
)

// Status classifies a running total against the tolerance band.
func (t Target) Status(total int) BandStatus {
	switch {
	case total < t.Lower():
		return BelowBand
	case total > t.Upper():
		return AboveBand
	default:
		return WithinBand
	}
}

// Percent returns the total as a percentage of the target.
func (t Target) Percent(total int) float64 {
	if t.Words == 0 {
		return 0
	}
	return float64(total) / float64(t.Words) * 100
}
