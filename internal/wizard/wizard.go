// Package wizard tracks progress through the guided 7-step flow.
package wizard

import (
	"math"

	"github.com/dpshade/luma/internal/generator"
	"github.com/dpshade/luma/internal/models"
)

// Wizard is a cursor over the framework steps plus the field-set being edited.
// The zero value is not usable; call New.
type Wizard struct {
	steps  []models.Step
	index  int
	fields models.FieldSet
}

// New starts a wizard at the first step with the given initial fields
func New(initial models.FieldSet) *Wizard {
	return &Wizard{
		steps:  generator.Steps,
		fields: initial,
	}
}

// Index returns the zero-based position of the current step
func (w *Wizard) Index() int {
	return w.index
}

// Len returns the number of steps
func (w *Wizard) Len() int {
	return len(w.steps)
}

// Step returns the current step descriptor
func (w *Wizard) Step() models.Step {
	return w.steps[w.index]
}

// IsFirst reports whether the cursor is on the first step
func (w *Wizard) IsFirst() bool {
	return w.index == 0
}

// IsLast reports whether the cursor is on the last step
func (w *Wizard) IsLast() bool {
	return w.index == len(w.steps)-1
}

// Value returns the current step's field value
func (w *Wizard) Value() string {
	return w.fields.Get(w.Step().ID)
}

// Set replaces the current step's field value
func (w *Wizard) Set(value string) {
	w.fields.Set(w.Step().ID, value)
}

// Fields returns a copy of the field-set as edited so far
func (w *Wizard) Fields() models.FieldSet {
	return w.fields
}

// CanAdvance reports whether Next may leave the current step.
// Required steps block until their field is non-empty.
func (w *Wizard) CanAdvance() bool {
	return !w.Step().Required || w.Value() != ""
}

// Next moves forward one step. On the last step it does not move and reports
// done instead. It does nothing while CanAdvance is false.
func (w *Wizard) Next() (done bool) {
	if !w.CanAdvance() {
		return false
	}
	if w.IsLast() {
		return true
	}
	w.index++
	return false
}

// Prev moves back one step. On the first step it does not move and reports
// exit instead.
func (w *Wizard) Prev() (exit bool) {
	if w.IsFirst() {
		return true
	}
	w.index--
	return false
}

// Progress returns completion of the current step as a whole percentage
func (w *Wizard) Progress() int {
	return int(math.Round(float64(w.index+1) / float64(len(w.steps)) * 100))
}

// StepState describes how a step indicator should be drawn
type StepState int

const (
	StepPending StepState = iota
	StepCurrent
	StepDone
)

// States returns the indicator state of every step
func (w *Wizard) States() []StepState {
	states := make([]StepState, len(w.steps))
	for i := range w.steps {
		switch {
		case i < w.index:
			states[i] = StepDone
		case i == w.index:
			states[i] = StepCurrent
		default:
			states[i] = StepPending
		}
	}
	return states
}
