package tui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ensigniasec/regionpick/internal/config"
	"github.com/ensigniasec/regionpick/internal/responsive"
	"github.com/ensigniasec/regionpick/internal/selector"
	"github.com/ensigniasec/regionpick/internal/storage"
	"github.com/ensigniasec/regionpick/internal/theme"
)

// fallbackColumns is assumed when the terminal size cannot be read.
const fallbackColumns = 80

// Options configures Run.
type Options struct {
	Store storage.KV
	// Responsive overlays the default responsive configuration.
	Responsive responsive.Config
	// Disabled turns responsive publishing off.
	Disabled bool
	// CellWidth is the pixel width of one terminal column.
	CellWidth float64
	// Fetched is the tree installed by fetch; nil uses the built-in tree.
	Fetched []selector.Option
	// ConfigPath is reloaded on change when Watch is set.
	ConfigPath string
	Watch      bool
	// LogOutput receives log output while the TUI owns the terminal; nil discards it.
	LogOutput io.Writer
}

// TerminalColumns returns the width of stdout, or fallback when it is not a terminal.
func TerminalColumns(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// Run starts the Bubble Tea TUI program, wiring the responsive controller and
// the selector to UI messages.
func Run(ctx context.Context, opts Options) error {
	events := make(chan tea.Msg, channelBufferSize)
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
			// The model re-reads state on the next message, so a dropped notification only delays a redraw.
			logrus.Debug("ui event buffer full; dropping notification")
		}
	}

	// Silence logs during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	if opts.LogOutput != nil {
		logrus.SetOutput(opts.LogOutput)
	} else {
		logrus.SetOutput(io.Discard)
	}
	defer logrus.SetOutput(prevOut)

	root := theme.NewRoot()
	vp := newTermViewport(TerminalColumns(fallbackColumns), opts.CellWidth)
	ctrl := responsive.NewController(vp, root,
		responsive.WithConfig(opts.Responsive),
		responsive.WithEnabled(!opts.Disabled),
		responsive.WithOnScaleChange(func(scale, width float64) {
			logrus.WithFields(logrus.Fields{"scale": scale, "width": width}).Info("responsive scale changed")
			send(scaleChangedMsg{Scale: scale, Width: width})
		}),
	)

	settings := []selector.Setting{
		selector.WithOnEvent(func(e selector.Event) { send(selectorMsg{Event: e}) }),
	}
	if opts.Fetched != nil {
		settings = append(settings, selector.WithFetchedOptions(opts.Fetched))
	}
	sel := selector.New(opts.Store, settings...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.Watch && opts.ConfigPath != "" {
		err := config.Watch(ctx, opts.ConfigPath, func(f config.File) {
			ctrl.SetConfig(f.Responsive)
			send(configReloadedMsg{})
		})
		if err != nil {
			logrus.WithError(err).Warn("config watch unavailable")
		}
	}

	ctrl.Start()
	defer func() {
		ctrl.Stop()
		sel.Close()
		// Late timer callbacks must not write to a root nobody renders.
		root.Detach()
	}()

	model := newModel(sel, ctrl, root, vp, events)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI blocking in this goroutine.
	_, err := p.Run()
	return err
}
