package cmd

import (
	"context"

	"github.com/mj1618/webimage/internal/dialog"
	"github.com/mj1618/webimage/internal/observability"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/spf13/cobra"
)

// newProviderFunc returns the native automation backend. Tests replace it.
var newProviderFunc = platform.NewProvider

var fillDialogCmd = &cobra.Command{
	Use:    "fill-dialog --title=T --class=C --index=N --button=B --path=P",
	Short:  "Fill a native file dialog (spawned by save)",
	Hidden: true,
	// Arguments belong to dialog.ParseArgs, not cobra.
	DisableFlagParsing: true,
	RunE:               runFillDialog,
}

func init() {
	rootCmd.AddCommand(fillDialogCmd)
}

// runFillDialog is the entry point of the filler process. Stdout carries the
// handshake; every failure is reported on it before the process exits.
func runFillDialog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	logger := observability.GetLogger().Named("filler")

	req, err := dialog.ParseArgs(args)
	if err != nil {
		err = &dialog.AutomationError{Stage: dialog.StageLaunch, Err: err}
		_ = dialog.WriteFailure(out, err)
		return err
	}

	provider, err := newProviderFunc()
	if err != nil {
		err = &dialog.AutomationError{Stage: dialog.StageLaunch, Err: err}
		_ = dialog.WriteFailure(out, err)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := dialog.Fill(ctx, provider, req, out, logger); err != nil {
		_ = dialog.WriteFailure(out, err)
		return err
	}
	return nil
}
