package entity

import (
	"encoding/json"
	"time"
)

type DeploymentStatus string

const (
	DeploymentStatusRunning   DeploymentStatus = "running"
	DeploymentStatusCompleted DeploymentStatus = "completed"
	DeploymentStatusFailure   DeploymentStatus = "failure"
)

type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusRunning StepStatus = "running"
	StepStatusFailure StepStatus = "failure"
	StepStatusQueued  StepStatus = "queued"
)

type Judgment string

const (
	JudgmentProceed  Judgment = "proceed"
	JudgmentRollback Judgment = "rollback"
)

type WorkflowExecution struct {
	RunID      string `json:"runId"`
	WorkflowID string `json:"workflowId"`
}

// Deployment is the server-owned snapshot returned by the show endpoint.
type Deployment struct {
	ID                string            `json:"id"`
	ClusterName       string            `json:"clusterName,omitempty"`
	Description       string            `json:"description,omitempty"`
	Owner             string            `json:"owner,omitempty"`
	Done              bool              `json:"done"`
	Status            DeploymentStatus  `json:"status"`
	Log               []string          `json:"log"`
	LogForSteps       []json.RawMessage `json:"logForSteps"`
	Steps             []Step            `json:"steps"`
	Token             string            `json:"token,omitempty"`
	WorkflowExecution WorkflowExecution `json:"workflowExecution"`
}

// LogForStep returns the log lines recorded for a step, or nil when the step has no
// log yet or its entry is not a list of strings.
func (d *Deployment) LogForStep(index int) []string {
	if index < 0 || index >= len(d.LogForSteps) {
		return nil
	}
	var lines []string
	if err := json.Unmarshal(d.LogForSteps[index], &lines); err != nil {
		return nil
	}
	return lines
}

// DeploymentRecord is the local history entry of a deployment started from this console.
type DeploymentRecord struct {
	ID           ID               `json:"id"`
	DeploymentID string           `json:"deploymentId"`
	ClusterName  string           `json:"clusterName"`
	TemplateName string           `json:"templateName"`
	Status       DeploymentStatus `json:"status"`
	Done         bool             `json:"done"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type Image struct {
	ImageID       string `json:"imageId"`
	Name          string `json:"name,omitempty"`
	ImageLocation string `json:"imageLocation,omitempty"`
	Description   string `json:"description,omitempty"`
}
