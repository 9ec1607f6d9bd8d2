package deployment

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
	"github.com/yz4230/asgard-console/internal/asgard/asgardtest"
	"github.com/yz4230/asgard-console/internal/config"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/usecase"
)

const preparedBody = `{
  "deploymentOptions": {"clusterName": "helloworld", "steps": [{"type":"CreateAsg"}]},
  "environment": {"purposeToVpcId": {"internal": "vpc-123"}},
  "asgOptions": {"subnetPurpose": "internal", "suspendedProcesses": []},
  "lcOptions": {}
}`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func setup(t *testing.T) *asgardtest.Server {
	t.Helper()
	fake := asgardtest.NewServer(t)
	fake.SetPrepared("helloworld", preparedBody)
	viper.Reset()
	config.SetDefaults(viper.GetViper())
	viper.Set(config.KeyAsgardURL, fake.BaseURL())
	viper.Set(config.KeyDataDir, t.TempDir())
	viper.Set(config.KeyPollInterval, 5*time.Millisecond)
	t.Cleanup(viper.Reset)
	return fake
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	DeploymentCmd.SetOut(&out)
	DeploymentCmd.SetErr(&out)
	DeploymentCmd.SetArgs(args)
	err := DeploymentCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWatch(t *testing.T) {
	fake := setup(t)
	fake.QueueDeployment("8",
		&entity.Deployment{ID: "8", Status: entity.DeploymentStatusRunning, Log: []string{"creating"},
			Steps: []entity.Step{{Type: entity.StepCreateAsg}, entity.NewStep(entity.StepWait)}},
		&entity.Deployment{ID: "8", Status: entity.DeploymentStatusCompleted, Done: true, Log: []string{"creating", "waiting"},
			Steps: []entity.Step{{Type: entity.StepCreateAsg}, entity.NewStep(entity.StepWait)}},
	)

	out, err := run(t, "watch", "8")
	if err != nil {
		t.Fatalf("watch error = %v, output:\n%s", err, out)
	}
	if strings.Count(out, "creating") != 1 || !strings.Contains(out, "waiting\n") {
		t.Errorf("log lines repeated or missing:\n%s", out)
	}
	for _, want := range []string{"deployment 8 completed", "Wait", "wait 60 minutes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestWatchFailure(t *testing.T) {
	fake := setup(t)
	fake.QueueDeployment("9", &entity.Deployment{ID: "9", Status: entity.DeploymentStatusFailure, Done: true})

	_, err := run(t, "watch", "9")
	if err == nil || !strings.Contains(err.Error(), "failure") {
		t.Errorf("watch error = %v, want failure status", err)
	}
}

func TestJudgeAndCancel(t *testing.T) {
	fake := setup(t)
	fake.QueueDeployment("5", &entity.Deployment{ID: "5", Status: entity.DeploymentStatusRunning, Token: "tok"})

	if out, err := run(t, "proceed", "5"); err != nil || !strings.Contains(out, "proceed sent") {
		t.Fatalf("proceed = %q, %v", out, err)
	}
	sent, ok := fake.LastRequest(http.MethodPost, "/deployment/proceed")
	if !ok || sent.Body != `{"id":"5","token":"tok"}` {
		t.Errorf("proceed request = %+v", sent)
	}
	if _, err := run(t, "rollback", "5"); err != nil {
		t.Fatalf("rollback error = %v", err)
	}
	if _, err := run(t, "cancel", "5"); err != nil {
		t.Fatalf("cancel error = %v", err)
	}
	if _, ok := fake.LastRequest(http.MethodGet, "/deployment/cancel/5.json"); !ok {
		t.Error("no cancel request")
	}
}

func TestStart(t *testing.T) {
	fake := setup(t)
	fake.SetStartID("42")
	stepsFile := filepath.Join(t.TempDir(), "steps.json")
	steps := `[{"type":"CreateAsg"},{"type":"Wait","durationMinutes":5}]`
	if err := os.WriteFile(stepsFile, []byte(steps), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "start", "helloworld", "--steps-file", stepsFile, "--suspend-az-rebalance")
	if err != nil {
		t.Fatalf("start error = %v, output:\n%s", err, out)
	}
	if !strings.Contains(out, "deployment 42 started") {
		t.Errorf("output = %q", out)
	}
	sent, _ := fake.LastRequest(http.MethodPost, "/deployment/start")
	if got := gjson.Get(sent.Body, "deploymentOptions.steps.1.durationMinutes").Int(); got != 5 {
		t.Errorf("wait duration sent = %d, want 5", got)
	}
	if got := gjson.Get(sent.Body, "asgOptions.suspendedProcesses").Raw; got != `["AZRebalance"]` {
		t.Errorf("suspendedProcesses = %s", got)
	}

	out, err = run(t, "list")
	if err != nil || !strings.Contains(out, "42") || !strings.Contains(out, "helloworld") {
		t.Errorf("list = %q, %v", out, err)
	}
}

func TestImages(t *testing.T) {
	fake := setup(t)
	fake.SetImages([]entity.Image{{ImageID: "ami-1", Name: "base"}})

	out, err := run(t, "images")
	if err != nil {
		t.Fatalf("images error = %v", err)
	}
	if !strings.Contains(out, "ami-1") || !strings.Contains(out, "base") {
		t.Errorf("output = %q", out)
	}
}

func TestMissingAsgardURL(t *testing.T) {
	setup(t)
	viper.Set(config.KeyAsgardURL, "")
	if _, err := run(t, "images"); err == nil || !strings.Contains(err.Error(), config.KeyAsgardURL) {
		t.Errorf("error = %v, want missing %s", err, config.KeyAsgardURL)
	}
}

func TestLogPrinter(t *testing.T) {
	var out bytes.Buffer
	p := &logPrinter{w: &out}
	p.update(nil)
	p.update(&usecase.DeploymentView{Deployment: &entity.Deployment{Log: []string{"a"}}})
	p.update(&usecase.DeploymentView{Deployment: &entity.Deployment{Log: []string{"a", "b"}}})
	p.update(&usecase.DeploymentView{Deployment: &entity.Deployment{Log: []string{"c"}}})
	if got := out.String(); got != "a\nb\nc\n" {
		t.Errorf("printed %q", got)
	}
}

func TestDescribeStep(t *testing.T) {
	tests := []struct {
		step entity.Step
		want string
	}{
		{entity.NewStep(entity.StepJudgment), "wait up to 120 minutes for judgment"},
		{entity.Step{Type: entity.StepResizeAsg, TargetAsg: entity.TargetNext, Capacity: 3, StartUpTimeoutMinutes: 40},
			"resize Next ASG to 3 instances, 40 minutes to start up"},
		{entity.NewStep(entity.StepDeleteAsg), "Previous ASG"},
		{entity.Step{Type: entity.StepCreateAsg}, "create next ASG"},
	}
	for _, tt := range tests {
		if got := describeStep(tt.step); got != tt.want {
			t.Errorf("describeStep(%s) = %q, want %q", tt.step.Type, got, tt.want)
		}
	}
}
