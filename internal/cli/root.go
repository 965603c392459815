package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/savebutton/internal/config"
	"github.com/rileyhilliard/savebutton/internal/errors"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile       string
	noColor       bool
	delayFlag     string
	reducedMotion bool
	fpsFlag       int
)

// rootCmd runs the button when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "savebutton",
	Short: "An animated save button for your terminal",
	Long: `savebutton draws a three-state save button (Save, Saving, Saved) and
animates every transition between them.

Press enter or click the button to start a save. The button stays busy for
the save delay, then shows a check mark until you press it again or click
anywhere outside it.

Examples:
  savebutton
  savebutton --delay 1500ms --reduced-motion
  savebutton trace --events activate@0,dismiss@4s`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .savebutton.yaml or ~/.config/savebutton/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&delayFlag, "delay", "", "how long a save takes (e.g., 3s, 1500ms)")
	rootCmd.PersistentFlags().BoolVar(&reducedMotion, "reduced-motion", false, "skip animations and jump to each end state")
	rootCmd.PersistentFlags().IntVar(&fpsFlag, "fps", 0, "frame rate of the interactive button")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !errors.IsCode(err, errors.ErrConfig) && !errors.IsCode(err, errors.ErrExec) && !errors.IsCode(err, errors.ErrTrace) {
			fmt.Fprintln(os.Stderr, "Run 'savebutton --help' for usage.")
		}
		os.Exit(1)
	}
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("delay") {
		delay, err := ParseDelay(delayFlag)
		if err != nil {
			return nil, err
		}
		cfg.SaveDelay = delay
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("fps") {
		cfg.FPS = fpsFlag
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
