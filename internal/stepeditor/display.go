package stepeditor

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/yz4230/asgard-console/internal/entity"
)

// Entry is one row of the display list: either an insertion marker whose step menu
// may be open, or a step.
type Entry struct {
	Marker bool
	Open   bool
	Step   entity.Step
}

func newMarker() Entry { return Entry{Marker: true} }

func newStepEntry(s entity.Step) Entry { return Entry{Step: s} }

type markerJSON struct {
	ShowSteps bool `json:"showSteps"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Marker {
		return json.Marshal(markerJSON{ShowSteps: e.Open})
	}
	return json.Marshal(e.Step)
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	if show := gjson.GetBytes(b, "showSteps"); show.Exists() {
		*e = Entry{Marker: true, Open: show.Bool()}
		return nil
	}
	var s entity.Step
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*e = newStepEntry(s)
	return nil
}

// DisplayList interleaves steps with insertion markers. It starts and ends with a
// marker and holds exactly one marker between two steps.
type DisplayList []Entry

func NewDisplayList(steps []entity.Step) DisplayList {
	d := make(DisplayList, 0, 2*len(steps)+1)
	d = append(d, newMarker())
	for _, s := range steps {
		d = append(d, newStepEntry(s), newMarker())
	}
	return d
}

// ParseDisplayList decodes the JSON form of a display list and checks its shape.
func ParseDisplayList(data []byte) (DisplayList, error) {
	var d DisplayList
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode display list: %w", err)
	}
	if err := d.Check(); err != nil {
		return nil, err
	}
	return d, nil
}

// Check verifies the marker/step alternation.
func (d DisplayList) Check() error {
	if len(d)%2 == 0 {
		return fmt.Errorf("%w: display list of length %d", entity.ErrInvalid, len(d))
	}
	for i, e := range d {
		if e.Marker != (i%2 == 0) {
			return fmt.Errorf("%w: display list entry %d out of place", entity.ErrInvalid, i)
		}
	}
	return nil
}

// Steps drops the markers.
func (d DisplayList) Steps() []entity.Step {
	return lo.FilterMap(d, func(e Entry, _ int) (entity.Step, bool) {
		return e.Step, !e.Marker
	})
}

func (d DisplayList) Clone() DisplayList {
	return slices.Clone(d)
}

func (d DisplayList) collapsed() DisplayList {
	return lo.Map(d, func(e Entry, _ int) Entry {
		e.Open = false
		return e
	})
}

func (d DisplayList) isMarker(index int) bool {
	return index >= 0 && index < len(d) && d[index].Marker
}

func (d DisplayList) isStep(index int) bool {
	return index >= 0 && index < len(d) && !d[index].Marker
}

func (d DisplayList) hasStepType(index int, t entity.StepType) bool {
	return d.isStep(index) && d[index].Step.Type == t
}

// firstIndex returns the display index of the first step of type t, or -1.
func (d DisplayList) firstIndex(t entity.StepType) int {
	_, index, ok := lo.FindIndexOf(d, func(e Entry) bool {
		return !e.Marker && e.Step.Type == t
	})
	if !ok {
		return -1
	}
	return index
}
