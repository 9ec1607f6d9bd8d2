package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const preparedJSON = `{
  "deploymentOptions": {
    "clusterName": "helloworld",
    "notificationDestination": "ops@example.com",
    "steps": [{"type":"CreateAsg"},{"type":"DeleteAsg","targetAsg":"Previous"}]
  },
  "environment": {
    "subnetPurposes": ["internal", "external"],
    "purposeToVpcId": {"internal": "vpc1", "external": "vpc2", "a.b": "vpc3"}
  },
  "asgOptions": {"subnetPurpose": "internal", "suspendedProcesses": [], "availabilityZones": []},
  "lcOptions": {"securityGroups": []}
}`

func TestPreparedDeploymentDecode(t *testing.T) {
	var p PreparedDeployment
	if err := json.Unmarshal([]byte(preparedJSON), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantSteps := []Step{{Type: StepCreateAsg}, {Type: StepDeleteAsg, TargetAsg: TargetPrevious}}
	if diff := cmp.Diff(wantSteps, p.DeploymentOptions.Steps); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
	if got := p.DeploymentOptions.Extra.String("clusterName"); got != "helloworld" {
		t.Errorf("clusterName = %q", got)
	}
	if got := p.AsgOptions.SubnetPurpose(); got != "internal" {
		t.Errorf("subnetPurpose = %q", got)
	}

	for purpose, want := range map[string]string{"internal": "vpc1", "external": "vpc2", "a.b": "vpc3", "neither": "", "": ""} {
		if got := p.Environment.VpcID(purpose); got != want {
			t.Errorf("VpcID(%q) = %q; want %q", purpose, got, want)
		}
	}
	if diff := cmp.Diff([]string{"internal", "external"}, p.Environment.SubnetPurposes()); diff != "" {
		t.Errorf("subnet purposes (-want +got):\n%s", diff)
	}
}

func TestDeploymentRequestKeepsServerFields(t *testing.T) {
	var p PreparedDeployment
	if err := json.Unmarshal([]byte(preparedJSON), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p.DeploymentOptions.Steps = append(p.DeploymentOptions.Steps, NewStep(StepWait))

	b, err := json.Marshal(p.Request())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal request: %v", err)
	}
	want := map[string]any{
		"deploymentOptions": map[string]any{
			"clusterName":             "helloworld",
			"notificationDestination": "ops@example.com",
			"steps": []any{
				map[string]any{"type": "CreateAsg"},
				map[string]any{"type": "DeleteAsg", "targetAsg": "Previous"},
				map[string]any{"type": "Wait", "durationMinutes": float64(60)},
			},
		},
		"asgOptions": map[string]any{"subnetPurpose": "internal", "suspendedProcesses": []any{}, "availabilityZones": []any{}},
		"lcOptions":  map[string]any{"securityGroups": []any{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request (-want +got):\n%s", diff)
	}
}

func TestSetProcessSuspended(t *testing.T) {
	o := Options{"suspendedProcesses": json.RawMessage(`[]`)}
	steps := []struct {
		process   string
		suspended bool
		want      []string
	}{
		{ProcessAZRebalance, true, []string{"AZRebalance"}},
		{ProcessAddToLoadBalancer, true, []string{"AZRebalance", "AddToLoadBalancer"}},
		{ProcessAZRebalance, false, []string{"AddToLoadBalancer"}},
		{"Launch", true, []string{"AddToLoadBalancer", "Launch"}},
		{ProcessAZRebalance, true, []string{"AZRebalance", "AddToLoadBalancer", "Launch"}},
		{ProcessAddToLoadBalancer, false, []string{"AZRebalance", "Launch"}},
		{ProcessAZRebalance, false, []string{"Launch"}},
		{"Launch", false, []string{}},
	}
	for i, s := range steps {
		if err := o.SetProcessSuspended(s.process, s.suspended); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if diff := cmp.Diff(s.want, o.SuspendedProcesses()); diff != "" {
			t.Errorf("step %d (-want +got):\n%s", i, diff)
		}
	}

	var nilOptions Options
	if err := nilOptions.SetProcessSuspended(ProcessAZRebalance, true); err == nil {
		t.Error("expected error on nil options")
	}
}

func TestOptionsTypeMismatch(t *testing.T) {
	o := Options{
		"subnetPurpose":      json.RawMessage(`42`),
		"suspendedProcesses": json.RawMessage(`"AZRebalance"`),
	}
	if got := o.SubnetPurpose(); got != "" {
		t.Errorf("SubnetPurpose() = %q, want empty", got)
	}
	if got := o.SuspendedProcesses(); got != nil {
		t.Errorf("SuspendedProcesses() = %v, want nil", got)
	}
	if got := o.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
}
