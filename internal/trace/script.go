package trace

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/savebutton/internal/errors"
	"gopkg.in/yaml.v3"
)

// Input is a user gesture replayed by a script.
type Input string

const (
	InputActivate Input = "activate"
	InputDismiss  Input = "dismiss"
)

// Event is one input at a time offset from the start of the run.
type Event struct {
	At    time.Duration `yaml:"at"`
	Input Input         `yaml:"input"`
}

// Script is the YAML form of a run.
type Script struct {
	Events []Event `yaml:"events"`
}

// UnmarshalYAML accepts "at" as a Go duration string or as integer
// milliseconds.
func (e *Event) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		At    yaml.Node `yaml:"at"`
		Input string    `yaml:"input"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	at, err := parseOffset(raw.At.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", raw.At.Line, err)
	}
	input, err := parseInput(raw.Input)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	e.At = at
	e.Input = input
	return nil
}

// ParseScript decodes a YAML script and sorts its events by time.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, errors.WrapWithCode(err, errors.ErrTrace,
			"Invalid trace script",
			"A script looks like:\n\n  events:\n    - at: 0s\n      input: activate")
	}
	sortEvents(s.Events)
	return s, nil
}

// LoadScript reads and decodes a YAML script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, errors.WrapWithCode(err, errors.ErrTrace,
			"Cannot read trace script "+path,
			"Check the path passed to --script")
	}
	return ParseScript(data)
}

// ParseEvents parses the compact form "activate@0,dismiss@3.5s". Offsets
// are Go durations or bare milliseconds.
func ParseEvents(list string) ([]Event, error) {
	var events []Event
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, offset, ok := strings.Cut(part, "@")
		if !ok {
			return nil, errors.New(errors.ErrTrace,
				fmt.Sprintf("Event '%s' has no time", part),
				"Write events as input@time, like activate@0 or dismiss@3.5s")
		}
		input, err := parseInput(strings.TrimSpace(name))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrTrace,
				fmt.Sprintf("Bad event '%s'", part),
				"Inputs are 'activate' and 'dismiss'")
		}
		at, err := parseOffset(strings.TrimSpace(offset))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrTrace,
				fmt.Sprintf("Bad event '%s'", part),
				"Times look like 0, 1500, 1.5s or 300ms")
		}
		events = append(events, Event{At: at, Input: input})
	}
	sortEvents(events)
	return events, nil
}

func parseInput(s string) (Input, error) {
	switch Input(s) {
	case InputActivate, InputDismiss:
		return Input(s), nil
	default:
		return "", fmt.Errorf("unknown input %q", s)
	}
}

func parseOffset(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("missing time")
	}
	var d time.Duration
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(ms) * time.Millisecond
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
	}
	if d < 0 {
		return 0, fmt.Errorf("negative time %s", s)
	}
	return d, nil
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At < events[j].At
	})
}
