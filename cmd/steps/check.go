package steps

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check that a step file can be sent to Asgard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := readSteps(cmd, args[0])
		if err != nil {
			return err
		}
		if err := stepeditor.Validate(steps); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d steps ok\n", args[0], len(steps))
		return nil
	},
}
