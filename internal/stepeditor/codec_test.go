package stepeditor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/yz4230/asgard-console/internal/entity"
)

func TestFormat(t *testing.T) {
	steps := []entity.Step{
		entity.NewStep(entity.StepWait),
		{Type: entity.StepCreateAsg},
		entity.NewStep(entity.StepResizeAsg),
	}
	want := "[\n" +
		"  {\"type\":\"Wait\",\"durationMinutes\":60},\n" +
		"  {\"type\":\"CreateAsg\"},\n" +
		"  {\"type\":\"ResizeAsg\",\"targetAsg\":\"Next\",\"capacity\":0,\"startUpTimeoutMinutes\":40}\n" +
		"]"
	if got := Format(steps); got != want {
		t.Errorf("Format() = %q; want %q", got, want)
	}
	if got := Format(nil); got != "[\n\n]" {
		t.Errorf("Format(nil) = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	sequences := [][]entity.Step{
		nil,
		{{Type: entity.StepCreateAsg}},
		{
			{Type: entity.StepWait, DurationMinutes: 5},
			{Type: entity.StepCreateAsg},
			{Type: entity.StepResizeAsg, TargetAsg: entity.TargetPrevious, Capacity: 12, StartUpTimeoutMinutes: 7},
			{Type: entity.StepJudgment, DurationMinutes: 0},
			{Type: entity.StepEnableAsg, TargetAsg: entity.TargetNext},
			{Type: entity.StepDisableAsg, TargetAsg: entity.TargetPrevious},
			{Type: entity.StepDeleteAsg, TargetAsg: entity.TargetNext},
		},
	}
	for _, steps := range sequences {
		got, err := Parse(Format(steps))
		if err != nil {
			t.Fatalf("Parse(Format(%v)): %v", steps, err)
		}
		if diff := cmp.Diff(steps, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(`[{"type":"Resize","targetAsg":"Next","capacity":3,"startUpTimeoutMinutes":40}]`)
	if err != nil {
		t.Fatalf("Parse legacy resize: %v", err)
	}
	want := []entity.Step{{Type: entity.StepResizeAsg, TargetAsg: entity.TargetNext, Capacity: 3, StartUpTimeoutMinutes: 40}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("legacy resize (-want +got):\n%s", diff)
	}

	bad := []string{
		``,
		`[{"type":"Wait"`,
		`{"type":"Wait"}`,
		`[{"type":"Reboot"}]`,
		`[{"type":"DisableAsg","targetAsg":"Other"}]`,
		`[{"type":"Wait","durationMinutes":"ten"}]`,
	}
	for _, text := range bad {
		_, err := Parse(text)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): expected *ParseError, got %v", text, err)
		}
	}
}
