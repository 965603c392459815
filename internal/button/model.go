// Package button hosts the save button in a Bubble Tea program. It is the
// rendering boundary: the lifecycle controller and choreography driver
// produce values, this package draws them and feeds input back.
package button

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/savebutton/internal/choreo"
	"github.com/rileyhilliard/savebutton/internal/clock"
	"github.com/rileyhilliard/savebutton/internal/lifecycle"
	"github.com/rileyhilliard/savebutton/internal/logger"
)

// maxFrameStep caps how much time a single frame may advance the clock, so
// a stalled terminal does not skip whole animations.
const maxFrameStep = 100 * time.Millisecond

// Options configures a Model.
type Options struct {
	Delay         time.Duration
	ReducedMotion bool
	FrameInterval time.Duration
	Labels        choreo.Labels
	Theme         choreo.Theme
	Logger        logger.Logger
}

// DefaultOptions mirror the config defaults.
func DefaultOptions() Options {
	return Options{
		Delay:         lifecycle.DefaultDelay,
		FrameInterval: time.Second / 60,
		Labels:        choreo.DefaultLabels(),
		Theme:         choreo.DefaultTheme(),
		Logger:        logger.Noop(),
	}
}

// Model is the Bubble Tea model for the save button.
type Model struct {
	clock    *clock.Clock
	ctrl     *lifecycle.Controller
	driver   *choreo.Driver
	theme    choreo.Theme
	keys     KeyMap
	help     help.Model
	interval time.Duration
	lastTick time.Time
	width    int
	height   int
	quitting bool
}

// frameMsg drives the clock once per frame.
type frameMsg time.Time

// NewModel wires a controller and driver onto a fresh clock.
func NewModel(opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	clk := clock.New()
	ctrl := lifecycle.New(clk,
		lifecycle.WithDelay(opts.Delay),
		lifecycle.WithLogger(opts.Logger),
	)
	driver := choreo.Attach(clk, ctrl,
		choreo.WithLabels(opts.Labels),
		choreo.WithTheme(opts.Theme),
		choreo.WithReducedMotion(opts.ReducedMotion),
		choreo.WithLogger(opts.Logger),
	)

	h := help.New()
	h.Styles.ShortKey = statusStyle
	h.Styles.ShortDesc = statusStyle
	h.Styles.FullKey = statusStyle
	h.Styles.FullDesc = statusStyle

	return Model{
		clock:    clk,
		ctrl:     ctrl,
		driver:   driver,
		theme:    opts.Theme,
		keys:     DefaultKeyMap(),
		help:     h,
		interval: opts.FrameInterval,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			dt := now.Sub(m.lastTick)
			if dt > maxFrameStep {
				dt = maxFrameStep
			}
			m.clock.Advance(dt)
		}
		m.lastTick = now
		return m, m.frameCmd()
	}

	return m, nil
}

// State returns the lifecycle state.
func (m Model) State() lifecycle.State {
	return m.ctrl.State()
}

// Busy reports whether activation is currently disabled.
func (m Model) Busy() bool {
	return m.ctrl.IsBusy()
}

// Frame samples the current visual parameters.
func (m Model) Frame() choreo.Frame {
	return m.driver.Frame()
}

// Close disposes the driver and controller. Safe to call more than once.
func (m Model) Close() {
	m.driver.Dispose()
	m.ctrl.Dispose()
}

func (m *Model) quit() {
	m.quitting = true
	m.Close()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// handleMouse treats a left press on the pill as activation and anywhere
// else as a dismiss gesture.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if m.layout(m.driver.Frame()).pill.contains(msg.X, msg.Y) {
		m.ctrl.HandleActivation()
		return
	}
	m.ctrl.HandleExternalDismiss()
}
