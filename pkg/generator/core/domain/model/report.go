package model

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ChunkReport is the outcome of one chunk call.
type ChunkReport struct {
	Plan     ChunkPlan
	Total    int
	Generate time.Duration
	Store    time.Duration
	// StagedFile is set in SQL mode to the staged fragment path.
	StagedFile string
}

// Message renders the progress line shown to the operator.
func (r ChunkReport) Message() string {
	gen := r.Generate.Seconds()
	store := r.Store.Seconds()
	return printer.Sprintf("Step %d/%d. %d/%d items generated. Time used: (generate: %.3f + store: %.3f) = %.3f sec.",
		r.Plan.Step, r.Plan.Steps, r.Plan.Generated, r.Total, gen, store, gen+store)
}

// FailureMessage renders the progress line for a failed chunk.
func FailureMessage(plan ChunkPlan, diagnostics string) string {
	return printer.Sprintf("Step %d/%d. Error encountered: %s.", plan.Step, plan.Steps, diagnostics)
}

// FormatNumber renders n with thousands separators.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
