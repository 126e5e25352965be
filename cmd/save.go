package cmd

import (
	"context"

	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/server"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save an image to a local file",
	Long: `Save an image by loading its source in the tab, opening the browser's
Save Picture dialog and filling the destination path into it from a helper
process. The tab is returned to the page it was on, whether or not the save
succeeded.

Examples:
  webimage save --url http://example.com/gallery --selector "#pic" --path 'C:\Images\pic.gif'
  webimage save --selector "#pic" --path ~/Pictures/pic.gif --overwrite --verify`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	addImageFlags(saveCmd)
	saveCmd.Flags().String("path", "", "Destination file path; ~ is expanded (required)")
	saveCmd.Flags().Bool("overwrite", false, "Replace an existing file (overrides config)")
	saveCmd.Flags().Bool("verify", false, "Wait for the saved file and decode it")
}

func runSave(cmd *cobra.Command, args []string) error {
	path, err := requireFlag(cmd, "path")
	if err != nil {
		return err
	}
	cfg := currentConfig()
	opts := image.SaveOptions{Overwrite: cfg.Save.Overwrite}
	if cmd.Flags().Changed("overwrite") {
		opts.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}
	check, _ := cmd.Flags().GetBool("verify")

	return withImage(cmd, func(ctx context.Context, img *image.Image, selector string) error {
		result, err := server.Save(ctx, img, selector, path, opts, check, cfg.Save.VerifyTimeout)
		if err != nil {
			return err
		}
		return output.Print(result)
	})
}
