package entity

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStepMarshalJSON(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{NewStep(StepWait), `{"type":"Wait","durationMinutes":60}`},
		{NewStep(StepJudgment), `{"type":"Judgment","durationMinutes":120}`},
		{NewStep(StepResizeAsg), `{"type":"ResizeAsg","targetAsg":"Next","capacity":0,"startUpTimeoutMinutes":40}`},
		{NewStep(StepDisableAsg), `{"type":"DisableAsg","targetAsg":"Previous"}`},
		{NewStep(StepEnableAsg), `{"type":"EnableAsg","targetAsg":"Next"}`},
		{NewStep(StepDeleteAsg), `{"type":"DeleteAsg","targetAsg":"Previous"}`},
		{Step{Type: StepCreateAsg}, `{"type":"CreateAsg"}`},
		// fields of other step types are not written
		{Step{Type: StepWait, DurationMinutes: 1, TargetAsg: TargetNext, Capacity: 4}, `{"type":"Wait","durationMinutes":1}`},
	}
	for _, tt := range tests {
		t.Run(string(tt.step.Type), func(t *testing.T) {
			b, err := json.Marshal(tt.step)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s; want %s", b, tt.want)
			}
		})
	}
}

func TestStepUnmarshalJSON(t *testing.T) {
	var s Step
	if err := json.Unmarshal([]byte(`{"durationMinutes":30,"targetAsg":"Next","type":"Wait"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if want := (Step{Type: StepWait, DurationMinutes: 30}); s != want {
		t.Errorf("got %+v; want %+v", s, want)
	}

	if err := json.Unmarshal([]byte(`{"type":"Teleport"}`), &s); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown type: expected ErrInvalid, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"type":"EnableAsg"}`), &s); !errors.Is(err, ErrInvalid) {
		t.Errorf("missing target: expected ErrInvalid, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"type":"Wait","durationMinutes":-1}`), &s); !errors.Is(err, ErrInvalid) {
		t.Errorf("negative duration: expected ErrInvalid, got %v", err)
	}
}

func TestParseStepType(t *testing.T) {
	for in, want := range map[string]StepType{
		"Resize":     StepResizeAsg,
		"ResizeAsg":  StepResizeAsg,
		"CreateAsg":  StepCreateAsg,
		"DisableAsg": StepDisableAsg,
	} {
		got, err := ParseStepType(in)
		if err != nil || got != want {
			t.Errorf("ParseStepType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStepType("wait"); err == nil {
		t.Error("step types are case sensitive")
	}
}

func TestIsCreateRelative(t *testing.T) {
	for _, typ := range []StepType{StepResizeAsg, StepDisableAsg, StepEnableAsg, StepDeleteAsg} {
		if !typ.IsCreateRelative() {
			t.Errorf("%s should be create relative", typ)
		}
	}
	for _, typ := range []StepType{StepWait, StepJudgment, StepCreateAsg} {
		if typ.IsCreateRelative() {
			t.Errorf("%s should not be create relative", typ)
		}
	}
}

func TestStepNormalize(t *testing.T) {
	tests := []struct {
		in   Step
		want Step
	}{
		{
			Step{Type: StepWait, DurationMinutes: 5, TargetAsg: TargetNext, Capacity: 7},
			Step{Type: StepWait, DurationMinutes: 5},
		},
		{
			Step{Type: StepDeleteAsg, TargetAsg: TargetPrevious, DurationMinutes: 3, StartUpTimeoutMinutes: 9},
			Step{Type: StepDeleteAsg, TargetAsg: TargetPrevious},
		},
		{
			Step{Type: StepResizeAsg, TargetAsg: TargetNext, Capacity: 2, StartUpTimeoutMinutes: 40, DurationMinutes: 1},
			Step{Type: StepResizeAsg, TargetAsg: TargetNext, Capacity: 2, StartUpTimeoutMinutes: 40},
		},
		{
			Step{Type: StepCreateAsg, TargetAsg: TargetNext},
			Step{Type: StepCreateAsg},
		},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("%+v.Normalize() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
