package cmd

import (
	"fmt"

	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List native top-level windows",
	Long:  "List open windows with their app name, title, PID, and bounds. Useful to see what title the Save Picture dialog has on this system.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("title", "", "Filter by title substring (case-insensitive)")
	listCmd.Flags().Int("pid", 0, "Filter windows by PID")
	listCmd.Flags().String("app", "", "Filter windows by app name")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := newProviderFunc()
	if err != nil {
		return err
	}
	if provider.Reader == nil {
		return fmt.Errorf("reader not available on this platform")
	}

	title, _ := cmd.Flags().GetString("title")
	pid, _ := cmd.Flags().GetInt("pid")
	app, _ := cmd.Flags().GetString("app")

	windows, err := provider.Reader.ListWindows(platform.ListOptions{Title: title, PID: pid, App: app})
	if err != nil {
		return err
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return output.Print(output.WindowsResult{Windows: windows})
}
