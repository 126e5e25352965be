package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/server"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print an image element's properties",
	Long: `Read an image element's src, alt, file date, file size and dimensions.
Properties are read fresh from the page; a still-loading image reports an
empty file date and a file size of -1.

Examples:
  webimage inspect --url http://example.com/gallery --selector "#logo"
  webimage inspect --selector "img.hero" --text`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addImageFlags(inspectCmd)
	inspectCmd.Flags().Bool("text", false, "Print the labelled text rendering instead of structured output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	asText, _ := cmd.Flags().GetBool("text")
	return withImage(cmd, func(ctx context.Context, img *image.Image, selector string) error {
		if asText {
			s, err := img.String(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(output.Stdout, s)
			return err
		}
		result, err := server.Inspect(ctx, img, selector)
		if err != nil {
			return err
		}
		return output.Print(result)
	})
}
