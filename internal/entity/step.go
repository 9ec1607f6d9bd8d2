package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

type StepType string

const (
	StepWait       StepType = "Wait"
	StepJudgment   StepType = "Judgment"
	StepResizeAsg  StepType = "ResizeAsg"
	StepDisableAsg StepType = "DisableAsg"
	StepEnableAsg  StepType = "EnableAsg"
	StepDeleteAsg  StepType = "DeleteAsg"

	// StepCreateAsg comes from the server's deployment template. It is never added
	// or removed by the operator.
	StepCreateAsg StepType = "CreateAsg"
)

// legacyResizeTag is what older servers emit for ResizeAsg.
const legacyResizeTag = "Resize"

// AddableStepTypes lists the types an operator may add, in menu order.
var AddableStepTypes = []StepType{
	StepWait,
	StepJudgment,
	StepResizeAsg,
	StepDisableAsg,
	StepEnableAsg,
	StepDeleteAsg,
}

var knownStepTypes = append([]StepType{StepCreateAsg}, AddableStepTypes...)

// ParseStepType resolves a type tag, accepting the legacy "Resize" tag.
func ParseStepType(s string) (StepType, error) {
	if s == legacyResizeTag {
		return StepResizeAsg, nil
	}
	if t := StepType(s); lo.Contains(knownStepTypes, t) {
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown step type %q", ErrInvalid, s)
}

// IsCreateRelative reports whether the step acts on the ASG created by the deployment
// and therefore has to sit between CreateAsg and DeleteAsg.
func (t StepType) IsCreateRelative() bool {
	switch t {
	case StepResizeAsg, StepDisableAsg, StepEnableAsg, StepDeleteAsg:
		return true
	}
	return false
}

func (t StepType) hasDuration() bool {
	return t == StepWait || t == StepJudgment
}

func (t StepType) hasTarget() bool {
	return t.IsCreateRelative()
}

type TargetAsg string

const (
	TargetPrevious TargetAsg = "Previous"
	TargetNext     TargetAsg = "Next"
)

// Step is a single entry of a deployment pipeline. Only the fields that belong to
// Type are meaningful; the others stay zero.
type Step struct {
	Type                  StepType
	DurationMinutes       int
	TargetAsg             TargetAsg
	Capacity              int
	StartUpTimeoutMinutes int
}

// NewStep returns a step of the given type filled with its default values.
func NewStep(t StepType) Step {
	switch t {
	case StepWait:
		return Step{Type: t, DurationMinutes: 60}
	case StepJudgment:
		return Step{Type: t, DurationMinutes: 120}
	case StepResizeAsg:
		return Step{Type: t, TargetAsg: TargetNext, Capacity: 0, StartUpTimeoutMinutes: 40}
	case StepDisableAsg, StepDeleteAsg:
		return Step{Type: t, TargetAsg: TargetPrevious}
	case StepEnableAsg:
		return Step{Type: t, TargetAsg: TargetNext}
	}
	return Step{Type: t}
}

type stepField struct {
	key   string
	value any
}

func (s Step) fields() []stepField {
	fields := []stepField{{"type", s.Type}}
	switch {
	case s.Type.hasDuration():
		fields = append(fields, stepField{"durationMinutes", s.DurationMinutes})
	case s.Type == StepResizeAsg:
		fields = append(fields,
			stepField{"targetAsg", s.TargetAsg},
			stepField{"capacity", s.Capacity},
			stepField{"startUpTimeoutMinutes", s.StartUpTimeoutMinutes})
	case s.Type.hasTarget():
		fields = append(fields, stepField{"targetAsg", s.TargetAsg})
	}
	return fields
}

// MarshalJSON writes a compact object with "type" first followed by the fields of
// that type in a fixed order.
func (s Step) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", f.key)
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type stepWire struct {
	Type                  string    `json:"type"`
	DurationMinutes       int       `json:"durationMinutes"`
	TargetAsg             TargetAsg `json:"targetAsg"`
	Capacity              int       `json:"capacity"`
	StartUpTimeoutMinutes int       `json:"startUpTimeoutMinutes"`
}

func (s *Step) UnmarshalJSON(b []byte) error {
	var w stepWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t, err := ParseStepType(w.Type)
	if err != nil {
		return err
	}
	step := Step{
		Type:                  t,
		DurationMinutes:       w.DurationMinutes,
		TargetAsg:             w.TargetAsg,
		Capacity:              w.Capacity,
		StartUpTimeoutMinutes: w.StartUpTimeoutMinutes,
	}.Normalize()
	if err := step.Validate(); err != nil {
		return err
	}
	*s = step
	return nil
}

// Normalize returns s with the fields that do not belong to its type zeroed, so the
// step equals what its JSON form decodes to.
func (s Step) Normalize() Step {
	n := Step{Type: s.Type}
	if s.Type.hasDuration() {
		n.DurationMinutes = s.DurationMinutes
	}
	if s.Type.hasTarget() {
		n.TargetAsg = s.TargetAsg
	}
	if s.Type == StepResizeAsg {
		n.Capacity = s.Capacity
		n.StartUpTimeoutMinutes = s.StartUpTimeoutMinutes
	}
	return n
}

// Validate checks the field values of a single step.
func (s Step) Validate() error {
	if !lo.Contains(knownStepTypes, s.Type) {
		return fmt.Errorf("%w: unknown step type %q", ErrInvalid, s.Type)
	}
	if s.Type.hasTarget() && s.TargetAsg != TargetPrevious && s.TargetAsg != TargetNext {
		return fmt.Errorf("%w: %s: targetAsg must be %q or %q, got %q",
			ErrInvalid, s.Type, TargetPrevious, TargetNext, s.TargetAsg)
	}
	if s.DurationMinutes < 0 || s.Capacity < 0 || s.StartUpTimeoutMinutes < 0 {
		return fmt.Errorf("%w: %s: negative value", ErrInvalid, s.Type)
	}
	return nil
}
