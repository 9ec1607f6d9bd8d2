package entity

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// Suspended processes the new deployment form exposes as toggles, in display order.
const (
	ProcessAZRebalance       = "AZRebalance"
	ProcessAddToLoadBalancer = "AddToLoadBalancer"
)

var toggledProcesses = []string{ProcessAZRebalance, ProcessAddToLoadBalancer}

// Options is a JSON object sent by the server that has to travel back unchanged
// except for the keys the console edits.
type Options map[string]json.RawMessage

// String returns the string at key. A missing key or a value of another JSON type
// reads as "".
func (o Options) String(key string) string {
	var s string
	if raw, ok := o[key]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Strings returns the string list at key, or nil when the key is missing or holds
// anything but a list of strings.
func (o Options) Strings(key string) []string {
	var ss []string
	if raw, ok := o[key]; ok {
		_ = json.Unmarshal(raw, &ss)
	}
	return ss
}

func (o Options) Set(key string, v any) error {
	if o == nil {
		return fmt.Errorf("set %s: %w: nil options", key, ErrInvalid)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	o[key] = raw
	return nil
}

func (o Options) SubnetPurpose() string {
	return o.String("subnetPurpose")
}

func (o Options) SuspendedProcesses() []string {
	return o.Strings("suspendedProcesses")
}

// SetProcessSuspended adds or removes a process from suspendedProcesses. The toggled
// processes are kept in display order, any other process follows in its original order.
func (o Options) SetProcessSuspended(process string, suspended bool) error {
	current := o.SuspendedProcesses()
	set := lo.SliceToMap(current, func(p string) (string, bool) { return p, true })
	if suspended {
		set[process] = true
	} else {
		delete(set, process)
	}

	result := lo.Filter(toggledProcesses, func(p string, _ int) bool { return set[p] })
	for _, p := range current {
		if set[p] && !lo.Contains(result, p) {
			result = append(result, p)
		}
	}
	if !lo.Contains(result, process) && suspended {
		result = append(result, process)
	}
	return o.Set("suspendedProcesses", result)
}

// DeploymentOptions carries the step pipeline plus every other server field untouched.
type DeploymentOptions struct {
	Steps []Step
	Extra Options
}

func (d DeploymentOptions) MarshalJSON() ([]byte, error) {
	out := make(Options, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	if err := out.Set("steps", lo.Ternary(d.Steps == nil, []Step{}, d.Steps)); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (d *DeploymentOptions) UnmarshalJSON(b []byte) error {
	var all Options
	if err := json.Unmarshal(b, &all); err != nil {
		return err
	}
	var steps []Step
	if raw, ok := all["steps"]; ok {
		if err := json.Unmarshal(raw, &steps); err != nil {
			return fmt.Errorf("deployment steps: %w", err)
		}
		delete(all, "steps")
	}
	d.Steps = steps
	d.Extra = all
	return nil
}

// Environment is the read-only environment description returned by prepare.
type Environment []byte

func (e Environment) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

func (e *Environment) UnmarshalJSON(b []byte) error {
	*e = append((*e)[:0], b...)
	return nil
}

// VpcID maps a subnet purpose to its VPC id, empty when the purpose is unknown.
func (e Environment) VpcID(purpose string) string {
	if purpose == "" {
		return ""
	}
	return gjson.GetBytes(e, "purposeToVpcId."+gjson.Escape(purpose)).String()
}

func (e Environment) SubnetPurposes() []string {
	return lo.Map(gjson.GetBytes(e, "subnetPurposes").Array(), func(r gjson.Result, _ int) string {
		return r.String()
	})
}

type PreparedDeployment struct {
	DeploymentOptions DeploymentOptions `json:"deploymentOptions"`
	Environment       Environment       `json:"environment,omitempty"`
	AsgOptions        Options           `json:"asgOptions"`
	LcOptions         Options           `json:"lcOptions"`
}

// Request builds the start payload from the prepared options.
func (p *PreparedDeployment) Request() *DeploymentRequest {
	return &DeploymentRequest{
		DeploymentOptions: p.DeploymentOptions,
		AsgOptions:        p.AsgOptions,
		LcOptions:         p.LcOptions,
	}
}

// DeploymentRequest is the body of the start endpoint.
type DeploymentRequest struct {
	DeploymentOptions DeploymentOptions `json:"deploymentOptions"`
	AsgOptions        Options           `json:"asgOptions"`
	LcOptions         Options           `json:"lcOptions"`
}
