package deployment

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/usecase"
)

type formatter func(format string, a ...any) string

var (
	successString = color.New(color.Bold).Add(color.FgHiGreen).SprintfFunc()
	failureString = color.New(color.Bold).Add(color.FgHiRed).SprintfFunc()
	runningString = color.New(color.Bold).Add(color.FgHiYellow).SprintfFunc()
	queuedString  = color.New(color.FgHiBlack).SprintfFunc()
	idString      = color.HiCyanString
	normalString  = fmt.Sprintf
)

func stepStatusFormatter(s entity.StepStatus) formatter {
	switch s {
	case entity.StepStatusSuccess:
		return successString
	case entity.StepStatusFailure:
		return failureString
	case entity.StepStatusRunning:
		return runningString
	case entity.StepStatusQueued:
		return queuedString
	}
	return normalString
}

func deploymentStatusFormatter(s entity.DeploymentStatus) formatter {
	switch s {
	case entity.DeploymentStatusCompleted:
		return successString
	case entity.DeploymentStatusFailure:
		return failureString
	case entity.DeploymentStatusRunning:
		return runningString
	}
	return normalString
}

// describeStep summarizes the fields of s that belong to its type.
func describeStep(s entity.Step) string {
	switch s.Type {
	case entity.StepWait:
		return fmt.Sprintf("wait %d minutes", s.DurationMinutes)
	case entity.StepJudgment:
		return fmt.Sprintf("wait up to %d minutes for judgment", s.DurationMinutes)
	case entity.StepResizeAsg:
		return fmt.Sprintf("resize %s ASG to %d instances, %d minutes to start up",
			s.TargetAsg, s.Capacity, s.StartUpTimeoutMinutes)
	case entity.StepDisableAsg, entity.StepEnableAsg, entity.StepDeleteAsg:
		return fmt.Sprintf("%s ASG", s.TargetAsg)
	case entity.StepCreateAsg:
		return "create next ASG"
	}
	return ""
}

// logPrinter writes the log lines of successive snapshots without repeating the ones
// already written.
type logPrinter struct {
	w       io.Writer
	printed int
}

func (p *logPrinter) update(v *usecase.DeploymentView) {
	if v == nil || v.Deployment == nil {
		return
	}
	log := v.Deployment.Log
	if len(log) < p.printed {
		p.printed = 0
	}
	for _, line := range log[p.printed:] {
		fmt.Fprintln(p.w, line)
	}
	p.printed = len(log)
}

func printStepTable(w io.Writer, v *usecase.DeploymentView) {
	d := v.Deployment
	fmt.Fprintf(w, "\ndeployment %s %s\n", idString("%s", d.ID), deploymentStatusFormatter(d.Status)("%s", d.Status))

	table := newTable(w, "#", "TYPE", "DETAIL", "STATUS")
	for i, step := range d.Steps {
		status := entity.StepStatusQueued
		if i < len(v.StepStatuses) {
			status = v.StepStatuses[i]
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			string(step.Type),
			describeStep(step),
			stepStatusFormatter(status)("%s", status),
		})
	}
	table.Render()

	if v.ExecutionReference != "" {
		fmt.Fprintf(w, "execution: %s\n", v.ExecutionReference)
	}
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	table.SetAutoWrapText(false)
	return table
}
