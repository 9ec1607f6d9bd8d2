package stepeditor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/entity"
)

// Event is an edit the operator makes. Events are the only way to change an Editor;
// each one yields a new display list from which the steps and JSON text are derived.
type Event interface {
	apply(d DisplayList) (DisplayList, error)
}

// AddStep inserts a step of Type right after the marker at Index.
type AddStep struct {
	Type  entity.StepType `json:"type"`
	Index int             `json:"index"`
}

// RemoveStep removes the entries at Index and Index+1: a step and its marker.
type RemoveStep struct {
	Index int `json:"index"`
}

// ToggleMenu opens or closes the step menu of the marker at Index.
type ToggleMenu struct {
	Index int `json:"index"`
}

// UpdateStep replaces the field values of the step at Index. The type can't change
// and fields that do not belong to it are dropped.
type UpdateStep struct {
	Index int         `json:"index"`
	Step  entity.Step `json:"step"`
}

// EditJSON replaces the whole pipeline with the steps parsed from Text.
type EditJSON struct {
	Text string `json:"text"`
}

func (e AddStep) apply(d DisplayList) (DisplayList, error) {
	if !Allowed(d, e.Type, e.Index) {
		return nil, fmt.Errorf("%w: %s at %d", entity.ErrNotAllowed, e.Type, e.Index)
	}
	return slices.Insert(d.collapsed(), e.Index+1, newStepEntry(entity.NewStep(e.Type)), newMarker()), nil
}

func (e RemoveStep) apply(d DisplayList) (DisplayList, error) {
	if e.Index < 0 || e.Index+1 >= len(d) {
		return nil, fmt.Errorf("%w: no step at %d", entity.ErrInvalid, e.Index)
	}
	entry, _ := lo.Find(d[e.Index:e.Index+2], func(e Entry) bool { return !e.Marker })
	if entry.Step.Type == entity.StepCreateAsg {
		return nil, fmt.Errorf("%w: %s can't be removed", entity.ErrNotAllowed, entity.StepCreateAsg)
	}
	return slices.Delete(d.collapsed(), e.Index, e.Index+2), nil
}

func (e ToggleMenu) apply(d DisplayList) (DisplayList, error) {
	if !d.isMarker(e.Index) {
		return nil, fmt.Errorf("%w: no marker at %d", entity.ErrInvalid, e.Index)
	}
	next := d.Clone()
	next[e.Index].Open = !next[e.Index].Open
	return next, nil
}

func (e UpdateStep) apply(d DisplayList) (DisplayList, error) {
	if !d.isStep(e.Index) {
		return nil, fmt.Errorf("%w: no step at %d", entity.ErrInvalid, e.Index)
	}
	if current := d[e.Index].Step.Type; e.Step.Type != current {
		return nil, fmt.Errorf("%w: step %d is a %s, got %s", entity.ErrInvalid, e.Index, current, e.Step.Type)
	}
	step := e.Step.Normalize()
	if err := step.Validate(); err != nil {
		return nil, err
	}
	next := d.Clone()
	next[e.Index].Step = step
	return next, nil
}

func (e EditJSON) apply(_ DisplayList) (DisplayList, error) {
	steps, err := Parse(e.Text)
	if err != nil {
		return nil, err
	}
	return NewDisplayList(steps), nil
}

// State is a snapshot of the editor as the UI renders it.
type State struct {
	Display    DisplayList   `json:"display"`
	Steps      []entity.Step `json:"steps"`
	JSON       string        `json:"json"`
	ParseError string        `json:"parseError,omitempty"`
}

// Editor owns the display list. The step sequence and its JSON text are projections
// of it and are never edited directly.
type Editor struct {
	display    DisplayList
	text       string
	parseError string
	onChange   func(State)
}

func New(steps []entity.Step) *Editor {
	ed := &Editor{display: NewDisplayList(steps)}
	ed.project()
	return ed
}

// FromDisplay restores an editor from a saved display list.
func FromDisplay(d DisplayList) (*Editor, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	ed := &Editor{display: d.Clone()}
	ed.project()
	return ed, nil
}

// OnChange registers fn to be called with the new state after every dispatched event,
// including rejected JSON edits.
func (ed *Editor) OnChange(fn func(State)) {
	ed.onChange = fn
}

// Dispatch applies ev. On error the structured state is left as it was; a JSON parse
// error is also kept for display until the next successful event.
func (ed *Editor) Dispatch(ev Event) error {
	next, err := ev.apply(ed.display)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			ed.parseError = pe.Error()
			ed.notify()
		}
		return err
	}
	ed.display = next
	ed.parseError = ""
	ed.project()
	ed.notify()
	return nil
}

func (ed *Editor) project() {
	ed.text = Format(ed.display.Steps())
}

func (ed *Editor) notify() {
	if ed.onChange != nil {
		ed.onChange(ed.State())
	}
}

func (ed *Editor) Add(t entity.StepType, index int) error {
	return ed.Dispatch(AddStep{Type: t, Index: index})
}

func (ed *Editor) Remove(index int) error {
	return ed.Dispatch(RemoveStep{Index: index})
}

func (ed *Editor) Toggle(index int) error {
	return ed.Dispatch(ToggleMenu{Index: index})
}

func (ed *Editor) Update(index int, s entity.Step) error {
	return ed.Dispatch(UpdateStep{Index: index, Step: s})
}

func (ed *Editor) SetJSON(text string) error {
	return ed.Dispatch(EditJSON{Text: text})
}

func (ed *Editor) Allowed(t entity.StepType, index int) bool {
	return Allowed(ed.display, t, index)
}

func (ed *Editor) AllowedTypes(index int) []entity.StepType {
	return AllowedTypes(ed.display, index)
}

func (ed *Editor) Display() DisplayList { return ed.display.Clone() }

func (ed *Editor) Steps() []entity.Step { return ed.display.Steps() }

func (ed *Editor) JSON() string { return ed.text }

func (ed *Editor) ParseError() string { return ed.parseError }

func (ed *Editor) State() State {
	return State{
		Display:    ed.Display(),
		Steps:      ed.Steps(),
		JSON:       ed.text,
		ParseError: ed.parseError,
	}
}
