package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/savebutton/internal/button"
	"github.com/rileyhilliard/savebutton/internal/config"
	"github.com/rileyhilliard/savebutton/internal/errors"
	"github.com/rileyhilliard/savebutton/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// debugLogFile receives logs while the TUI owns the terminal.
const debugLogFile = "savebutton-debug.log"

// runCmd runs the interactive button
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the save button in the terminal",
	Long: `Run the save button full screen.

Keys:
  enter, space   press the button
  esc            dismiss the saved state
  m              toggle reduced motion
  ?              show all keys
  q, ctrl+c      quit

The mouse works too: click the button to press it, click anywhere else to
dismiss. Set SAVEBUTTON_DEBUG=1 to write a debug log to savebutton-debug.log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// buttonOptions maps a loaded config onto the TUI model options.
func buttonOptions(cfg *config.Config, log logger.Logger) button.Options {
	return button.Options{
		Delay:         cfg.SaveDelay,
		ReducedMotion: cfg.ReducedMotion,
		FrameInterval: cfg.FrameInterval(),
		Labels:        cfg.Labels(),
		Theme:         cfg.Palette(),
		Logger:        log,
	}
}

// runCommand starts the Bubble Tea program.
func runCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrExec,
			"savebutton needs an interactive terminal",
			"Use 'savebutton trace' to replay input without a terminal.")
	}

	log := logger.Noop()
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(debugLogFile, "savebutton")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Cannot open debug log "+debugLogFile,
				"Unset SAVEBUTTON_DEBUG or run from a writable directory.")
		}
		defer f.Close()
		log = logger.NewEnvLogger("[button]")
	}

	model := button.NewModel(buttonOptions(cfg, log))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// Cancel any pending save timer and stop the animations.
	model.Close()

	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec, "The button crashed", "")
	}
	return nil
}
