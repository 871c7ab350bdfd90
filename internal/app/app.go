package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/menufile"
	"github.com/atomicstack/popup-menu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	MenuFile        string
	RootMenu        string
	Width           int
	Height          int
	AnchorX         int
	AnchorY         int
	AnchorCorner    geometry.Corner
	MenuCorner      geometry.Corner
	XOffset         int
	YOffset         int
	Fixed           bool
	RTL             bool
	Quick           bool
	TypeaheadDelay  time.Duration
	HoverOpenDelay  time.Duration
	HoverCloseDelay time.Duration
	DefaultFocus    menu.DefaultFocus
	ShowFooter      bool
	Mouse           bool
}

// LoadDefinition reads the configured menu file, or the built-in menu, and
// narrows it to RootMenu.
func LoadDefinition(cfg Config) (*menufile.Definition, error) {
	def := menufile.Default()
	if cfg.MenuFile != "" {
		loaded, err := menufile.Load(cfg.MenuFile)
		if err != nil {
			return nil, err
		}
		def = loaded
	}
	if cfg.RootMenu == "" || cfg.RootMenu == menufile.RootID {
		return def, nil
	}
	sub, err := def.Subtree(cfg.RootMenu)
	if err != nil {
		return nil, fmt.Errorf("root menu: %w", err)
	}
	return sub, nil
}

// ModelOptions maps the configuration onto the UI model.
func ModelOptions(cfg Config, def *menufile.Definition) ui.Options {
	return ui.Options{
		Definition:   def,
		Width:        cfg.Width,
		Height:       cfg.Height,
		AnchorX:      cfg.AnchorX,
		AnchorY:      cfg.AnchorY,
		RTL:          cfg.RTL,
		ShowFooter:   cfg.ShowFooter,
		OpenOnStart:  true,
		DefaultFocus: cfg.DefaultFocus,
		Root: func(p *menu.Props) {
			p.AnchorCorner = cfg.AnchorCorner
			p.MenuCorner = cfg.MenuCorner
			p.XOffset = cfg.XOffset
			p.YOffset = cfg.YOffset
			p.Fixed = cfg.Fixed
			p.Quick = cfg.Quick
			if cfg.TypeaheadDelay > 0 {
				p.TypeaheadDelay = cfg.TypeaheadDelay
			}
		},
		Submenu: func(s *menu.SubmenuItem) {
			// Per-item delays from the menu file win over the flags.
			if s.HoverOpenDelay == menu.DefaultHoverDelay {
				s.HoverOpenDelay = cfg.HoverOpenDelay
			}
			if s.HoverCloseDelay == menu.DefaultHoverDelay {
				s.HoverCloseDelay = cfg.HoverCloseDelay
			}
		},
	}
}

// Run bootstraps and executes the Bubble Tea program, then writes the
// selected value to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	def, err := LoadDefinition(cfg)
	if err != nil {
		return err
	}
	opts := ModelOptions(cfg, def)
	opts.Context = ctx
	model, err := ui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("build menu: %w", err)
	}
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, programOpts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit("", nil)
		return nil
	}
	if err != nil {
		events.App.Exit("", err)
		return err
	}
	return Report(model, out)
}

// Report writes the model's selection, if any, to out.
func Report(model *ui.Model, out io.Writer) error {
	res := model.Result()
	if res == nil {
		events.App.Exit("", nil)
		return nil
	}
	events.App.Exit(res.ID, nil)
	if msg := model.Err(); msg != "" && res.Copy {
		return fmt.Errorf("copy %s: %s", res.ID, msg)
	}
	_, err := fmt.Fprintln(out, res.Value)
	return err
}
