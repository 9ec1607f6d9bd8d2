package stepeditor

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/entity"
)

// rule receives the marker index a step would be inserted at.
type rule func(d DisplayList, index int) bool

func notAdjacentTo(t entity.StepType) rule {
	return func(d DisplayList, index int) bool {
		return !d.hasStepType(index-1, t) && !d.hasStepType(index+1, t)
	}
}

func notLast(d DisplayList, index int) bool {
	return index != len(d)-1
}

func last(d DisplayList, index int) bool {
	return index == len(d)-1
}

func notBeforeFirst(t entity.StepType) rule {
	return func(d DisplayList, index int) bool {
		first := d.firstIndex(t)
		return first < 0 || index >= first
	}
}

func notAfterFirst(t entity.StepType) rule {
	return func(d DisplayList, index int) bool {
		first := d.firstIndex(t)
		return first < 0 || index <= first
	}
}

func noneExisting(t entity.StepType) rule {
	return func(d DisplayList, _ int) bool {
		return d.firstIndex(t) < 0
	}
}

var placementRules = map[entity.StepType][]rule{
	entity.StepWait:     {notAdjacentTo(entity.StepWait), notLast},
	entity.StepJudgment: {notAdjacentTo(entity.StepJudgment), notLast},
	entity.StepResizeAsg: {
		notBeforeFirst(entity.StepCreateAsg),
		notAfterFirst(entity.StepDeleteAsg),
	},
	entity.StepDisableAsg: {
		notBeforeFirst(entity.StepCreateAsg),
		notAfterFirst(entity.StepDeleteAsg),
	},
	entity.StepEnableAsg: {
		notBeforeFirst(entity.StepCreateAsg),
		notAfterFirst(entity.StepDeleteAsg),
	},
	entity.StepDeleteAsg: {
		notBeforeFirst(entity.StepCreateAsg),
		notAfterFirst(entity.StepDeleteAsg),
		noneExisting(entity.StepDeleteAsg),
		last,
	},
}

// Allowed reports whether a step of type t may be inserted at the marker at index.
func Allowed(d DisplayList, t entity.StepType, index int) bool {
	if !d.isMarker(index) {
		return false
	}
	rules, ok := placementRules[t]
	if !ok {
		return false
	}
	return lo.EveryBy(rules, func(r rule) bool { return r(d, index) })
}

// AllowedTypes lists the step types that may be inserted at the marker at index.
func AllowedTypes(d DisplayList, index int) []entity.StepType {
	return lo.Filter(entity.AddableStepTypes, func(t entity.StepType, _ int) bool {
		return Allowed(d, t, index)
	})
}

// Validate checks a whole step sequence before it is sent to the server: every step
// is well formed, there is at most one DeleteAsg, and steps acting on the new ASG sit
// between the first CreateAsg and the first DeleteAsg.
func Validate(steps []entity.Step) error {
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	if n := lo.CountBy(steps, isType(entity.StepDeleteAsg)); n > 1 {
		return fmt.Errorf("%w: %d %s steps, at most one allowed", entity.ErrInvalid, n, entity.StepDeleteAsg)
	}
	_, create, _ := lo.FindIndexOf(steps, isType(entity.StepCreateAsg))
	_, del, _ := lo.FindIndexOf(steps, isType(entity.StepDeleteAsg))
	for i, s := range steps {
		if !s.Type.IsCreateRelative() {
			continue
		}
		if create >= 0 && i < create {
			return fmt.Errorf("%w: step %d: %s before %s", entity.ErrInvalid, i, s.Type, entity.StepCreateAsg)
		}
		if del >= 0 && i > del {
			return fmt.Errorf("%w: step %d: %s after %s", entity.ErrInvalid, i, s.Type, entity.StepDeleteAsg)
		}
	}
	return nil
}

func isType(t entity.StepType) func(entity.Step) bool {
	return func(s entity.Step) bool { return s.Type == t }
}
