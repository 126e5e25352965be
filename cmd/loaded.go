package cmd

import (
	"context"

	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/output"
	"github.com/spf13/cobra"
)

var loadedCmd = &cobra.Command{
	Use:   "loaded",
	Short: "Report whether an image finished loading",
	Long:  "An image is loaded once the browser reports both a file date and a file size for it.",
	RunE:  runLoaded,
}

func init() {
	rootCmd.AddCommand(loadedCmd)
	addImageFlags(loadedCmd)
}

func runLoaded(cmd *cobra.Command, args []string) error {
	return withImage(cmd, func(ctx context.Context, img *image.Image, selector string) error {
		loaded, err := img.Loaded(ctx)
		if err != nil {
			return err
		}
		return output.Print(output.LoadedResult{Selector: selector, Loaded: loaded})
	})
}
