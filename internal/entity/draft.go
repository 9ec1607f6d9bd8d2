package entity

import "time"

// Draft is a step pipeline the operator is still editing. Display is the JSON form of
// the editor's display list so the insertion menus survive a reload.
type Draft struct {
	ID           ID
	ClusterName  string
	TemplateName string
	Display      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
