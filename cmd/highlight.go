package cmd

import (
	"context"

	"github.com/mj1618/webimage/internal/image"
	"github.com/mj1618/webimage/internal/observability"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Set or clear a highlight border around an image",
	Long: `Set draws a 1px border around the image and remembers the border it had.
Clear restores the remembered border. Each invocation opens its own session,
so a clear without a prior set in the same session removes the border.
Use "webimage serve" to keep highlight state across calls.

A failed attempt is reported in the output and does not fail the command.`,
	RunE: runHighlight,
}

func init() {
	rootCmd.AddCommand(highlightCmd)
	addImageFlags(highlightCmd)
	highlightCmd.Flags().String("mode", "set", "Highlight mode: set, clear")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	modeStr, _ := cmd.Flags().GetString("mode")
	mode, err := image.ParseMode(modeStr)
	if err != nil {
		return err
	}
	return withImage(cmd, func(ctx context.Context, img *image.Image, selector string) error {
		attempt := img.Highlight(ctx, mode)
		if attempt.Err != nil {
			observability.GetLogger().Warn("Highlight attempt failed.",
				zap.String("selector", selector), zap.Stringer("mode", mode), zap.Error(attempt.Err))
		}
		return output.Print(server.HighlightResult(selector, attempt))
	})
}
