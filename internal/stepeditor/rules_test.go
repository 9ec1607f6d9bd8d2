package stepeditor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yz4230/asgard-console/internal/entity"
)

func TestAllowed(t *testing.T) {
	// [M Wait M Create M Resize M Judgment M Disable M]
	withoutDelete := NewDisplayList([]entity.Step{
		entity.NewStep(entity.StepWait),
		{Type: entity.StepCreateAsg},
		entity.NewStep(entity.StepResizeAsg),
		entity.NewStep(entity.StepJudgment),
		{Type: entity.StepDisableAsg, TargetAsg: entity.TargetPrevious},
	})
	// [M Create M Disable M Delete M]
	withDelete := NewDisplayList([]entity.Step{
		{Type: entity.StepCreateAsg},
		{Type: entity.StepDisableAsg, TargetAsg: entity.TargetPrevious},
		{Type: entity.StepDeleteAsg, TargetAsg: entity.TargetPrevious},
	})

	tests := []struct {
		name    string
		display DisplayList
		step    entity.StepType
		index   int
		want    bool
	}{
		{"wait between steps", withoutDelete, entity.StepWait, 4, true},
		{"wait before another wait", withoutDelete, entity.StepWait, 0, false},
		{"wait after another wait", withoutDelete, entity.StepWait, 2, false},
		{"wait at the end", withoutDelete, entity.StepWait, 10, false},
		{"judgment between steps", withoutDelete, entity.StepJudgment, 4, true},
		{"judgment before another judgment", withoutDelete, entity.StepJudgment, 6, false},
		{"judgment after another judgment", withoutDelete, entity.StepJudgment, 8, false},
		{"judgment at the end", withoutDelete, entity.StepJudgment, 10, false},
		{"resize after create", withoutDelete, entity.StepResizeAsg, 4, true},
		{"resize before create", withoutDelete, entity.StepResizeAsg, 2, false},
		{"disable after create", withoutDelete, entity.StepDisableAsg, 8, true},
		{"disable before create", withoutDelete, entity.StepDisableAsg, 2, false},
		{"enable after create", withoutDelete, entity.StepEnableAsg, 4, true},
		{"enable before create", withoutDelete, entity.StepEnableAsg, 2, false},
		{"delete before create", withoutDelete, entity.StepDeleteAsg, 2, false},
		{"delete at the end", withoutDelete, entity.StepDeleteAsg, 10, true},
		{"delete not at the end", withoutDelete, entity.StepDeleteAsg, 8, false},
		{"second delete before it", withDelete, entity.StepDeleteAsg, 4, false},
		{"second delete at the end", withDelete, entity.StepDeleteAsg, 6, false},
		{"disable before delete", withDelete, entity.StepDisableAsg, 4, true},
		{"disable after delete", withDelete, entity.StepDisableAsg, 6, false},
		{"enable before delete", withDelete, entity.StepEnableAsg, 4, true},
		{"enable after delete", withDelete, entity.StepEnableAsg, 6, false},
		{"resize before delete", withDelete, entity.StepResizeAsg, 4, true},
		{"resize after delete", withDelete, entity.StepResizeAsg, 6, false},
		{"step index", withDelete, entity.StepWait, 3, false},
		{"negative index", withDelete, entity.StepWait, -1, false},
		{"index past the end", withDelete, entity.StepWait, 7, false},
		{"create is never added", withDelete, entity.StepCreateAsg, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.display, tt.step, tt.index); got != tt.want {
				t.Errorf("Allowed(%s, %d) = %v; want %v", tt.step, tt.index, got, tt.want)
			}
		})
	}
}

func TestAllowedWithoutCreateOrDelete(t *testing.T) {
	d := NewDisplayList([]entity.Step{entity.NewStep(entity.StepJudgment)})
	got := AllowedTypes(d, 2)
	want := []entity.StepType{
		entity.StepResizeAsg,
		entity.StepDisableAsg,
		entity.StepEnableAsg,
		entity.StepDeleteAsg,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllowedTypes mismatch (-want +got):\n%s", diff)
	}

	got = AllowedTypes(d, 0)
	want = []entity.StepType{
		entity.StepWait,
		entity.StepResizeAsg,
		entity.StepDisableAsg,
		entity.StepEnableAsg,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AllowedTypes mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	create := entity.Step{Type: entity.StepCreateAsg}
	del := entity.NewStep(entity.StepDeleteAsg)
	disable := entity.NewStep(entity.StepDisableAsg)

	tests := []struct {
		name    string
		steps   []entity.Step
		wantErr bool
	}{
		{"empty", nil, false},
		{"template", []entity.Step{create, entity.NewStep(entity.StepJudgment), disable, del}, false},
		{"no create", []entity.Step{disable, del}, false},
		{"resize before create", []entity.Step{entity.NewStep(entity.StepResizeAsg), create}, true},
		{"disable after delete", []entity.Step{create, del, disable}, true},
		{"two deletes", []entity.Step{create, del, del}, true},
		{"bad target", []entity.Step{create, {Type: entity.StepEnableAsg, TargetAsg: "Other"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.steps)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, entity.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
