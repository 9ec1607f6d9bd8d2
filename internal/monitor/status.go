package monitor

import (
	"strings"

	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/utils"
)

// LogText joins the deployment log, each line followed by a newline.
func LogText(d *entity.Deployment) string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, line := range d.Log {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CurrentStep is the index of the last step that has a log entry, -1 when none has.
func CurrentStep(d *entity.Deployment) int {
	if d == nil {
		return -1
	}
	return len(d.LogForSteps) - 1
}

// StepStatusOf derives the status of step index from the step currently logging and
// the overall deployment status.
func StepStatusOf(d *entity.Deployment, index int) entity.StepStatus {
	if d == nil {
		return entity.StepStatusQueued
	}
	current := CurrentStep(d)
	switch {
	case index < current:
		return entity.StepStatusSuccess
	case index > current:
		return entity.StepStatusQueued
	case d.Status == entity.DeploymentStatusCompleted && index == len(d.Steps)-1:
		return entity.StepStatusSuccess
	case d.Status != entity.DeploymentStatusRunning:
		return entity.StepStatusFailure
	default:
		return entity.StepStatusRunning
	}
}

// StepStatuses returns StepStatusOf for every step of d.
func StepStatuses(d *entity.Deployment) []entity.StepStatus {
	if d == nil {
		return nil
	}
	return lo.Times(len(d.Steps), func(i int) entity.StepStatus {
		return StepStatusOf(d, i)
	})
}

// ExecutionReference renders the workflow correlation ids as a query string usable
// for linking into the workflow inspection tool.
func ExecutionReference(we entity.WorkflowExecution) string {
	return "runId=" + utils.EscapeQueryComponent(we.RunID) +
		"&workflowId=" + utils.EscapeQueryComponent(we.WorkflowID)
}
