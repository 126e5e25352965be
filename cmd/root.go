package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/webimage/internal/config"
	"github.com/mj1618/webimage/internal/observability"
	"github.com/mj1618/webimage/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X github.com/mj1618/webimage/cmd.Version=...".
var Version = "dev"

var (
	cfgFile string
	// appConfig is loaded by the root command before any subcommand runs.
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "webimage",
	Short: "Inspect, highlight and save images on web pages",
	Long: `Drive a browser tab to read an image element's properties, check whether it
finished loading, toggle a highlight border around it, and save it to disk
through the browser's native Save Picture dialog.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("driver", "", "Browser driver: chromedp, rod (overrides config)")
	rootCmd.PersistentFlags().String("debugger-url", "", "Attach to a running browser at this DevTools URL instead of launching one")
	rootCmd.PersistentFlags().Bool("headless", false, "Launch the browser headless")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// setup loads configuration, applies flag overrides and initializes logging.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		observability.InitializeLogger(config.NewDefaultConfig().Logger)
		return err
	}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("log-level") {
		cfg.Logger.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("driver") {
		cfg.Browser.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("debugger-url") {
		cfg.Browser.DebuggerURL, _ = flags.GetString("debugger-url")
	}
	if flags.Changed("headless") {
		cfg.Browser.Headless, _ = flags.GetBool("headless")
	}
	observability.InitializeLogger(cfg.Logger)
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	observability.GetLogger().Debug("Starting webimage.", zap.String("version", Version), zap.String("command", cmd.Name()))

	format, _ := flags.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = flags.GetBool("pretty")
	output.Stdout = cmd.OutOrStdout()
	return nil
}

// currentConfig returns the loaded config, or defaults when setup did not run.
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.NewDefaultConfig()
	}
	return appConfig
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}
