package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

// DraftView is a stored draft with its editor state.
type DraftView struct {
	ID           entity.ID `json:"id"`
	ClusterName  string    `json:"clusterName"`
	TemplateName string    `json:"templateName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	stepeditor.State
}

func newDraftView(d *entity.Draft, ed *stepeditor.Editor) *DraftView {
	return &DraftView{
		ID:           d.ID,
		ClusterName:  d.ClusterName,
		TemplateName: d.TemplateName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		State:        ed.State(),
	}
}

func openEditor(d *entity.Draft) (*stepeditor.Editor, error) {
	display, err := stepeditor.ParseDisplayList([]byte(d.Display))
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", d.ID, err)
	}
	return stepeditor.FromDisplay(display)
}

func encodeDisplay(ed *stepeditor.Editor) (string, error) {
	b, err := json.Marshal(ed.Display())
	if err != nil {
		return "", fmt.Errorf("encode display list: %w", err)
	}
	return string(b), nil
}
