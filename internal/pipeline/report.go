package pipeline

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/page"
)

// Report describes one build run.
type Report struct {
	BuildID        string
	Start          time.Time
	End            time.Time
	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]metrics.ResultLabel
	// Files is the number of files loaded; Parsed of them were claimed by a
	// parser and Skipped were not.
	Files       int
	Parsed      int
	Skipped     int
	StaticFiles int
	PagesByKind map[page.Kind]int
	// Pages lists every page written, first-phase pages first.
	Pages   []page.Page
	Outcome metrics.BuildOutcomeLabel
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]metrics.ResultLabel),
		PagesByKind:    make(map[page.Kind]int),
	}
}

func (r *Report) finish(outcome metrics.BuildOutcomeLabel) {
	r.End = time.Now()
	r.Outcome = outcome
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// TotalPages is the number of pages written.
func (r *Report) TotalPages() int { return len(r.Pages) }

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("build=%s files=%d parsed=%d skipped=%d pages=%d static=%d duration=%s outcome=%s",
		r.BuildID, r.Files, r.Parsed, r.Skipped, r.TotalPages(), r.StaticFiles,
		r.Duration().Truncate(time.Millisecond), r.Outcome)
}
