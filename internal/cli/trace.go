package cli

import (
	"io"
	"time"

	"github.com/rileyhilliard/savebutton/internal/config"
	"github.com/rileyhilliard/savebutton/internal/errors"
	"github.com/rileyhilliard/savebutton/internal/logger"
	"github.com/rileyhilliard/savebutton/internal/trace"
	"github.com/spf13/cobra"
)

// Trace command flags
var (
	traceEventsFlag   string
	traceScriptFlag   string
	traceStepFlag     string
	traceDurationFlag string
	traceFormatFlag   string
	traceChangesOnly  bool
)

// traceCmd replays input on a virtual clock and prints the frames
var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Replay input and print every frame",
	Long: `Replay a list of inputs against the button on a virtual clock and print
the state and every visual value at a fixed sampling interval. Nothing is
drawn and no real time passes, so traces are exact and repeatable.

Inputs come from --events or from a YAML --script:

  events:
    - at: 0
      input: activate
    - at: 4s
      input: dismiss

Examples:
  savebutton trace --events activate@0
  savebutton trace --events activate@0,dismiss@3500 --changes-only
  savebutton trace --script demo.yaml --format json --step 10ms`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return traceCommand(cmd, cmd.OutOrStdout())
	},
}

func init() {
	traceCmd.Flags().StringVar(&traceEventsFlag, "events", "", "inputs as input@time, comma-separated (e.g., activate@0,dismiss@3.5s)")
	traceCmd.Flags().StringVar(&traceScriptFlag, "script", "", "YAML file listing the inputs")
	traceCmd.Flags().StringVar(&traceStepFlag, "step", "50ms", "sampling interval")
	traceCmd.Flags().StringVar(&traceDurationFlag, "duration", "", "how long to run (default: last input + delay + 1s)")
	traceCmd.Flags().StringVar(&traceFormatFlag, "format", trace.FormatYAML, "output format: yaml or json")
	traceCmd.Flags().BoolVar(&traceChangesOnly, "changes-only", false, "only print frames that differ from the previous one")

	rootCmd.AddCommand(traceCmd)
}

// traceCommand implements the trace command logic.
func traceCommand(cmd *cobra.Command, out io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	events, err := traceEvents(traceEventsFlag, traceScriptFlag)
	if err != nil {
		return err
	}

	step, err := parseTraceDuration("step", traceStepFlag)
	if err != nil {
		return err
	}
	duration, err := parseTraceDuration("duration", traceDurationFlag)
	if err != nil {
		return err
	}

	result, err := trace.Run(traceOptions(cfg, events, step, duration))
	if err != nil {
		return err
	}
	return trace.Encode(out, result, traceFormatFlag)
}

func traceOptions(cfg *config.Config, events []trace.Event, step, duration time.Duration) trace.Options {
	log := logger.Noop()
	if logger.DebugEnabled() {
		log = logger.NewEnvLogger("[trace]")
	}
	return trace.Options{
		Events:        events,
		Delay:         cfg.SaveDelay,
		ReducedMotion: cfg.ReducedMotion,
		Labels:        cfg.Labels(),
		Theme:         cfg.Palette(),
		Step:          step,
		Duration:      duration,
		ChangesOnly:   traceChangesOnly,
		Logger:        log,
	}
}

// traceEvents reads inputs from exactly one of --events and --script.
func traceEvents(events, script string) ([]trace.Event, error) {
	if events != "" && script != "" {
		return nil, errors.New(errors.ErrTrace,
			"--events and --script cannot be used together",
			"Put every input in the script, or pass them all with --events.")
	}
	if script != "" {
		s, err := trace.LoadScript(script)
		if err != nil {
			return nil, err
		}
		return s.Events, nil
	}
	return trace.ParseEvents(events)
}

func parseTraceDuration(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}
	d, err := ParseDelay(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrTrace,
			"--"+name+" '"+flag+"' is not a duration",
			"Try something like 50ms or 5s.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrTrace,
			"--"+name+" must be positive",
			"Try something like 50ms or 5s.")
	}
	return d, nil
}
