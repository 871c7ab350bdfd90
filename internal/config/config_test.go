package config

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popup-menu/internal/app"
	"github.com/atomicstack/popup-menu/internal/geometry"
	"github.com/atomicstack/popup-menu/internal/menu"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)

	want := app.Config{
		AnchorCorner:    geometry.EndStart,
		MenuCorner:      geometry.StartStart,
		TypeaheadDelay:  200 * time.Millisecond,
		HoverOpenDelay:  400 * time.Millisecond,
		HoverCloseDelay: 400 * time.Millisecond,
		DefaultFocus:    menu.FocusFirstItem,
		Mouse:           true,
	}
	if diff := cmp.Diff(want, cfg.App); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Logging{}, cfg.Logging)
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		"POPUP_MENU_WIDTH=100",
		"POPUP_MENU_HEIGHT=40",
		"POPUP_MENU_RTL=true",
		"POPUP_MENU_HOVER_OPEN_DELAY=150",
		"POPUP_MENU_TYPEAHEAD_DELAY=1s",
		"POPUP_MENU_MENU_CORNER=end_end",
		"POPUP_MENU_LOG_FILE=env.log",
		"UNRELATED",
	}
	args := []string{"--width", "60", "--root", "fruit", "--quick", "--trace", "--default-focus", "last_item"}
	cfg, err := LoadArgs(args, environ)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.App.Width, "flag wins over env")
	assert.Equal(t, 40, cfg.App.Height)
	assert.True(t, cfg.App.RTL)
	assert.True(t, cfg.App.Quick)
	assert.Equal(t, "fruit", cfg.App.RootMenu)
	assert.Equal(t, 150*time.Millisecond, cfg.App.HoverOpenDelay)
	assert.Equal(t, time.Second, cfg.App.TypeaheadDelay)
	assert.Equal(t, geometry.EndEnd, cfg.App.MenuCorner)
	assert.Equal(t, menu.FocusLastItem, cfg.App.DefaultFocus)
	assert.Equal(t, Logging{FilePath: "env.log", Trace: true}, cfg.Logging)
	assert.Equal(t, "60", cfg.Flags["width"])
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"POPUP_MENU_WIDTH=wide", "POPUP_MENU_MOUSE=maybe", "POPUP_MENU_HOVER_CLOSE_DELAY=soon"})
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.App.Width)
	assert.True(t, cfg.App.Mouse)
	assert.Equal(t, menu.DefaultHoverDelay, cfg.App.HoverCloseDelay)
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	_, err := LoadArgs([]string{"--anchor-corner", "middle"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, geometry.ErrInvalidCorner))

	_, err = LoadArgs([]string{"--default-focus", "somewhere"}, nil)
	assert.Error(t, err)

	_, err = LoadArgs([]string{"--no-such-flag"}, nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*app.Config)
	}{
		{"negative width", func(c *app.Config) { c.Width = -1 }},
		{"negative height", func(c *app.Config) { c.Height = -1 }},
		{"negative anchor", func(c *app.Config) { c.AnchorX = -3 }},
		{"negative delay", func(c *app.Config) { c.HoverOpenDelay = -time.Millisecond }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadArgs(nil, nil)
			require.NoError(t, err)
			tc.mut(&cfg.App)
			assert.Error(t, Validate(cfg))
		})
	}
}
