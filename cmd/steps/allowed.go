package steps

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

var allowedCmd = &cobra.Command{
	Use:   "allowed <file> <index>",
	Short: "List the step types that may be added at a marker",
	Long: `List the step types that may be added at a marker of the display list.

Markers sit at the even indexes of the display list: 0 is before the first
step and 2*n after the n-th step.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := readSteps(cmd, args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: index %q", entity.ErrInvalid, args[1])
		}
		display := stepeditor.NewDisplayList(steps)
		if index < 0 || index >= len(display) || index%2 != 0 {
			return fmt.Errorf("%w: index %d is not a marker of %d entries", entity.ErrInvalid, index, len(display))
		}
		for _, t := range stepeditor.AllowedTypes(display, index) {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}
