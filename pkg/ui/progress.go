package ui

import (
	"github.com/pterm/pterm"

	"github.com/appforge/appforge/pkg/scaffold"
)

// Progress drives a pterm spinner per orchestration stage. It
// implements scaffold.Observer.
type Progress struct {
	spinner *pterm.SpinnerPrinter
	quiet   bool
}

// NewProgress returns a spinner-backed observer. With quiet set it
// stays silent, for non-TTY runs.
func NewProgress(quiet bool) *Progress {
	return &Progress{quiet: quiet}
}

// StageStarted begins a spinner for the stage.
func (p *Progress) StageStarted(_ scaffold.Stage, message string) {
	if p.quiet {
		return
	}
	spinner, err := pterm.DefaultSpinner.Start(message)
	if err != nil {
		return
	}
	p.spinner = spinner
}

// StageCompleted resolves the current spinner to a checkmark.
func (p *Progress) StageCompleted(_ scaffold.Stage, message string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Success(message)
	p.spinner = nil
}

// Fail resolves the current spinner, if any, to a cross. Called by the
// command layer when a run errors mid-stage.
func (p *Progress) Fail(message string) {
	if p.spinner == nil {
		return
	}
	p.spinner.Fail(message)
	p.spinner = nil
}
