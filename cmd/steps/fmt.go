package steps

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

var fmtFlags struct {
	write bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print a step file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := readSteps(cmd, args[0])
		if err != nil {
			return err
		}
		text := stepeditor.Format(steps) + "\n"
		if fmtFlags.write && args[0] != "-" {
			return os.WriteFile(args[0], []byte(text), 0o644)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "Write the result back to the file")
}
