package deployment

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
	"github.com/yz4230/asgard-console/internal/usecase"
)

var startFlags struct {
	template                 string
	stepsFile                string
	subnetPurpose            string
	suspendAZRebalance       bool
	suspendAddToLoadBalancer bool
	watch                    bool
}

var startCmd = &cobra.Command{
	Use:   "start <cluster>",
	Short: "Start a deployment of the next ASG of a cluster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := startInput(cmd, args[0])
		if err != nil {
			return err
		}
		return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
			start := do.MustInvoke[usecase.StartDeploymentUsecase](injector)
			id, err := start.Execute(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deployment %s started\n", idString("%s", id))
			if !startFlags.watch {
				return nil
			}
			return watchDeployment(ctx, cmd, injector, id)
		})
	},
}

func init() {
	startCmd.Flags().StringVarP(&startFlags.template, "template", "t", "", "Deployment template, defaults to "+usecase.DefaultTemplateName)
	startCmd.Flags().StringVarP(&startFlags.stepsFile, "steps-file", "f", "", "JSON file with the steps to run instead of the template's")
	startCmd.Flags().StringVar(&startFlags.subnetPurpose, "subnet-purpose", "", "Subnet purpose of the new ASG")
	startCmd.Flags().BoolVar(&startFlags.suspendAZRebalance, "suspend-az-rebalance", false, "Suspend "+entity.ProcessAZRebalance+" on the new ASG")
	startCmd.Flags().BoolVar(&startFlags.suspendAddToLoadBalancer, "suspend-add-to-load-balancer", false, "Suspend "+entity.ProcessAddToLoadBalancer+" on the new ASG")
	startCmd.Flags().BoolVarP(&startFlags.watch, "watch", "w", false, "Watch the deployment after starting it")
}

// startInput collects the flags of cmd. Process toggles are only sent when given so
// the template's setting is kept otherwise.
func startInput(cmd *cobra.Command, cluster string) (*usecase.StartDeploymentInput, error) {
	in := &usecase.StartDeploymentInput{
		ClusterName:        cluster,
		TemplateName:       startFlags.template,
		SubnetPurpose:      startFlags.subnetPurpose,
		SuspendedProcesses: map[string]bool{},
	}
	if cmd.Flags().Changed("suspend-az-rebalance") {
		in.SuspendedProcesses[entity.ProcessAZRebalance] = startFlags.suspendAZRebalance
	}
	if cmd.Flags().Changed("suspend-add-to-load-balancer") {
		in.SuspendedProcesses[entity.ProcessAddToLoadBalancer] = startFlags.suspendAddToLoadBalancer
	}
	if startFlags.stepsFile != "" {
		steps, err := readSteps(startFlags.stepsFile)
		if err != nil {
			return nil, err
		}
		in.Steps = steps
	}
	return in, nil
}

func readSteps(path string) ([]entity.Step, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	steps, err := stepeditor.Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}
