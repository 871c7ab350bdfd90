package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/menu"
	"github.com/atomicstack/popup-menu/internal/typeahead"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile        = "POPUP_MENU_MENU"
	envRoot            = "POPUP_MENU_ROOT"
	envWidth           = "POPUP_MENU_WIDTH"
	envHeight          = "POPUP_MENU_HEIGHT"
	envAnchorX         = "POPUP_MENU_ANCHOR_X"
	envAnchorY         = "POPUP_MENU_ANCHOR_Y"
	envAnchorCorner    = "POPUP_MENU_ANCHOR_CORNER"
	envMenuCorner      = "POPUP_MENU_MENU_CORNER"
	envXOffset         = "POPUP_MENU_X_OFFSET"
	envYOffset         = "POPUP_MENU_Y_OFFSET"
	envFixed           = "POPUP_MENU_FIXED"
	envRTL             = "POPUP_MENU_RTL"
	envQuick           = "POPUP_MENU_QUICK"
	envTypeaheadDelay  = "POPUP_MENU_TYPEAHEAD_DELAY"
	envHoverOpenDelay  = "POPUP_MENU_HOVER_OPEN_DELAY"
	envHoverCloseDelay = "POPUP_MENU_HOVER_CLOSE_DELAY"
	envDefaultFocus    = "POPUP_MENU_DEFAULT_FOCUS"
	envShowFooter      = "POPUP_MENU_FOOTER"
	envMouse           = "POPUP_MENU_MOUSE"
	envTrace           = "POPUP_MENU_TRACE"
	envLogFile         = "POPUP_MENU_LOG_FILE"
)

// Values holds the flag destinations declared by Register.
type Values struct {
	menuFile        string
	root            string
	width           int
	height          int
	anchorX         int
	anchorY         int
	anchorCorner    string
	menuCorner      string
	xOffset         int
	yOffset         int
	fixed           bool
	rtl             bool
	quick           bool
	typeaheadDelay  time.Duration
	hoverOpenDelay  time.Duration
	hoverCloseDelay time.Duration
	defaultFocus    string
	footer          bool
	mouse           bool
	trace           bool
	logFile         string
}

// Register declares every option on fs. Defaults come from environ so that
// an explicit flag always wins over the environment.
func Register(fs *pflag.FlagSet, environ []string) *Values {
	env := parseEnv(environ)
	v := &Values{}
	fs.StringVar(&v.menuFile, "menu", envOrDefault(env, envMenuFile, ""), "path to a YAML menu definition (built-in demo menu when empty)")
	fs.StringVar(&v.root, "root", envOrDefault(env, envRoot, ""), "id of the menu to open instead of the root (e.g. fruit/citrus)")
	fs.IntVar(&v.width, "width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&v.height, "height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	fs.IntVar(&v.anchorX, "anchor-x", envOrInt(env, envAnchorX, 0), "column of the trigger button")
	fs.IntVar(&v.anchorY, "anchor-y", envOrInt(env, envAnchorY, 0), "row of the trigger button")
	fs.StringVar(&v.anchorCorner, "anchor-corner", envOrDefault(env, envAnchorCorner, "END_START"), "corner of the trigger the menu attaches to")
	fs.StringVar(&v.menuCorner, "menu-corner", envOrDefault(env, envMenuCorner, "START_START"), "corner of the menu that attaches to the trigger")
	fs.IntVar(&v.xOffset, "x-offset", envOrInt(env, envXOffset, 0), "horizontal offset from the anchor corner")
	fs.IntVar(&v.yOffset, "y-offset", envOrInt(env, envYOffset, 0), "vertical offset from the anchor corner")
	fs.BoolVar(&v.fixed, "fixed", envOrBool(env, envFixed, false), "position the root menu against the viewport (top layer)")
	fs.BoolVar(&v.rtl, "rtl", envOrBool(env, envRTL, false), "lay out right-to-left")
	fs.BoolVar(&v.quick, "quick", envOrBool(env, envQuick, false), "skip open and close animations")
	fs.DurationVar(&v.typeaheadDelay, "typeahead-delay", envOrDuration(env, envTypeaheadDelay, typeahead.DefaultBufferTime), "idle time before the typeahead buffer resets")
	fs.DurationVar(&v.hoverOpenDelay, "hover-open-delay", envOrDuration(env, envHoverOpenDelay, menu.DefaultHoverDelay), "hover time before a submenu opens")
	fs.DurationVar(&v.hoverCloseDelay, "hover-close-delay", envOrDuration(env, envHoverCloseDelay, menu.DefaultHoverDelay), "time after the pointer leaves before a submenu closes")
	fs.StringVar(&v.defaultFocus, "default-focus", envOrDefault(env, envDefaultFocus, "FIRST_ITEM"), "focus on open: NONE, LIST_ROOT, FIRST_ITEM or LAST_ITEM")
	fs.BoolVar(&v.footer, "footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	fs.BoolVar(&v.mouse, "mouse", envOrBool(env, envMouse, true), "track mouse motion and clicks")
	fs.BoolVar(&v.trace, "trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	fs.StringVar(&v.logFile, "log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	return v
}

// Config resolves the parsed values.
func (v *Values) Config(args []string) (Config, error) {
	anchorCorner, err := geometry.ParseCorner(v.anchorCorner)
	if err != nil {
		return Config{}, fmt.Errorf("anchor-corner: %w", err)
	}
	menuCorner, err := geometry.ParseCorner(v.menuCorner)
	if err != nil {
		return Config{}, fmt.Errorf("menu-corner: %w", err)
	}
	focus, err := menu.ParseDefaultFocus(v.defaultFocus)
	if err != nil {
		return Config{}, fmt.Errorf("default-focus: %w", err)
	}

	cfg := Config{
		App: app.Config{
			MenuFile:        v.menuFile,
			RootMenu:        v.root,
			Width:           v.width,
			Height:          v.height,
			AnchorX:         v.anchorX,
			AnchorY:         v.anchorY,
			AnchorCorner:    anchorCorner,
			MenuCorner:      menuCorner,
			XOffset:         v.xOffset,
			YOffset:         v.yOffset,
			Fixed:           v.fixed,
			RTL:             v.rtl,
			Quick:           v.quick,
			TypeaheadDelay:  v.typeaheadDelay,
			HoverOpenDelay:  v.hoverOpenDelay,
			HoverCloseDelay: v.hoverCloseDelay,
			DefaultFocus:    focus,
			ShowFooter:      v.footer,
			Mouse:           v.mouse,
		},
		Logging: Logging{
			FilePath: v.logFile,
			Trace:    v.trace,
		},
		Flags: map[string]string{
			"menu":          v.menuFile,
			"root":          v.root,
			"width":         strconv.Itoa(v.width),
			"height":        strconv.Itoa(v.height),
			"anchorX":       strconv.Itoa(v.anchorX),
			"anchorY":       strconv.Itoa(v.anchorY),
			"anchorCorner":  anchorCorner.String(),
			"menuCorner":    menuCorner.String(),
			"defaultFocus":  focus.String(),
			"footer":        strconv.FormatBool(v.footer),
			"mouse":         strconv.FormatBool(v.mouse),
			"quick":         strconv.FormatBool(v.quick),
			"rtl":           strconv.FormatBool(v.rtl),
			"trace":         strconv.FormatBool(v.trace),
			"typeaheadWait": v.typeaheadDelay.String(),
			"logFile":       v.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("popup-menu", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	v := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return v.Config(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("250ms") or bare milliseconds.
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes, positions and delays that cannot be honoured.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.AnchorX < 0 || a.AnchorY < 0 {
		return fmt.Errorf("anchor must be >= 0 (got %d,%d)", a.AnchorX, a.AnchorY)
	}
	for name, d := range map[string]time.Duration{
		"typeahead-delay":   a.TypeaheadDelay,
		"hover-open-delay":  a.HoverOpenDelay,
		"hover-close-delay": a.HoverCloseDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0 (got %s)", name, d)
		}
	}
	return nil
}
