package steps

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/entity"
	"github.com/yz4230/asgard-console/internal/stepeditor"
)

// StepsCmd represents the steps command
var StepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Work with deployment step files offline",
}

func init() {
	StepsCmd.AddCommand(fmtCmd)
	StepsCmd.AddCommand(checkCmd)
	StepsCmd.AddCommand(allowedCmd)
}

// readSteps parses the step list in path, or in stdin when path is "-".
func readSteps(cmd *cobra.Command, path string) ([]entity.Step, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	steps, err := stepeditor.Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}
