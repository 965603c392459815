// Package cli implements the savebutton command-line interface.
//
// # Command Structure
//
// The root command runs the interactive button. Subcommands:
//
//	savebutton                 - Run the button in the terminal (same as run)
//	savebutton run             - Run the button in the terminal
//	savebutton trace           - Replay scripted input and print frames
//	savebutton version         - Print version information
//	savebutton completion      - Generate shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --no-color, --delay, --reduced-motion, --fps)
// are defined on the root command and available to all subcommands. They
// override the matching keys of the loaded config file; the merged result
// is validated before any command runs.
package cli
