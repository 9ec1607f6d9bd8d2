package stepeditor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/yz4230/asgard-console/internal/entity"
)

// ParseError is returned when operator-edited step JSON cannot be used.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid steps JSON at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("invalid steps JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Format renders steps one compact object per line:
//
//	[
//	  {"type":"CreateAsg"},
//	  {"type":"DeleteAsg","targetAsg":"Previous"}
//	]
func Format(steps []entity.Step) string {
	lines := lo.Map(steps, func(s entity.Step, _ int) string {
		return "  " + string(lo.Must(json.Marshal(s)))
	})
	return "[\n" + strings.Join(lines, ",\n") + "\n]"
}

// Parse reads a JSON array of steps. Whitespace and field order are free.
func Parse(text string) ([]entity.Step, error) {
	if !gjson.Valid(text) {
		var probe any
		err := json.Unmarshal([]byte(text), &probe)
		pe := &ParseError{Err: err}
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			pe.Offset = syntax.Offset
		}
		return nil, pe
	}
	if !gjson.Parse(text).IsArray() {
		return nil, &ParseError{Err: errors.New("steps must be a JSON array")}
	}
	var steps []entity.Step
	if err := json.Unmarshal([]byte(text), &steps); err != nil {
		return nil, &ParseError{Err: err}
	}
	return steps, nil
}
