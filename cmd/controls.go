package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/webimage/internal/model"
	"github.com/mj1618/webimage/internal/output"
	"github.com/mj1618/webimage/internal/platform"
	"github.com/spf13/cobra"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Read the native controls of a window",
	Long: `Read the control tree of a top-level window. Each element carries its
native class, so this shows which Edit index and button label a dialog uses.

Examples:
  webimage controls --title "Save Picture"
  webimage controls --window-id 1234 --depth 2`,
	RunE: runControls,
}

func init() {
	rootCmd.AddCommand(controlsCmd)
	controlsCmd.Flags().String("title", "", "Window title substring")
	controlsCmd.Flags().Int("window-id", 0, "Target by window ID")
	controlsCmd.Flags().Int("depth", 0, "Max depth (0 = unlimited)")
	controlsCmd.Flags().String("class", "", "Only show controls of this native class")
	controlsCmd.Flags().String("text", "", "Only show controls whose title or value contains this text")
	controlsCmd.Flags().String("roles", "", "Comma-separated roles to keep (btn, input, ... or interactive)")
}

func runControls(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	windowID, _ := cmd.Flags().GetInt("window-id")
	depth, _ := cmd.Flags().GetInt("depth")
	class, _ := cmd.Flags().GetString("class")
	text, _ := cmd.Flags().GetString("text")
	roles, _ := cmd.Flags().GetString("roles")
	if title == "" && windowID == 0 {
		return fmt.Errorf("--title or --window-id is required")
	}

	provider, err := newProviderFunc()
	if err != nil {
		return err
	}
	if provider.Reader == nil {
		return fmt.Errorf("reader not available on this platform")
	}

	elements, err := provider.Reader.ReadElements(platform.ReadOptions{Window: title, WindowID: windowID, Depth: depth})
	if err != nil {
		return err
	}
	elements = model.FilterByText(elements, text)
	if roles != "" {
		elements = model.FilterByRoles(elements, strings.Split(roles, ","))
	}
	if class != "" {
		elements = filterByClass(elements, class)
	}
	if elements == nil {
		elements = []model.Element{}
	}
	return output.Print(output.ControlsResult{
		Window:   title,
		TS:       time.Now().Unix(),
		Count:    model.CountElements(elements),
		Elements: elements,
	})
}

// filterByClass flattens the tree to the controls of the given class, in
// document order. Indexes into the result match dialog control indexes.
func filterByClass(elements []model.Element, class string) []model.Element {
	var out []model.Element
	for i := 0; ; i++ {
		el := model.FindByClass(elements, class, i)
		if el == nil {
			return out
		}
		leaf := *el
		leaf.Children = nil
		out = append(out, leaf)
	}
}
