package deployment

import (
	"context"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/yz4230/asgard-console/internal/usecase"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List the machine images known to Asgard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInjector(cmd, func(ctx context.Context, injector *do.Injector) error {
			usecase := do.MustInvoke[usecase.ListImagesUsecase](injector)
			images, err := usecase.Execute(ctx)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "IMAGE ID", "NAME", "LOCATION")
			for _, image := range images {
				table.Append([]string{idString("%s", image.ImageID), image.Name, image.ImageLocation})
			}
			table.Render()
			return nil
		})
	},
}
