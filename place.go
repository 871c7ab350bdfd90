package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/popup-menu/internal/format/table"
	"github.com/atomicstack/popup-menu/internal/geometry"
)

type placeOptions struct {
	anchor       string
	surface      string
	viewport     string
	anchorCorner string
	menuCorner   string
	xOffset      int
	yOffset      int
	fixed        bool
	rtl          bool
}

// newPlaceCommand exposes the position solver without a terminal UI.
func newPlaceCommand() *cobra.Command {
	opts := &placeOptions{}
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Solve a surface position and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := opts.solve()
			if err != nil {
				return err
			}
			for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.anchor, "anchor", "", "anchor rectangle as x,y,w,h")
	f.StringVar(&opts.surface, "surface", "", "surface size as w,h")
	f.StringVar(&opts.viewport, "viewport", "80,24", "viewport size as w,h")
	f.StringVar(&opts.anchorCorner, "anchor-corner", "END_START", "corner of the anchor")
	f.StringVar(&opts.menuCorner, "menu-corner", "START_START", "corner of the surface")
	f.IntVar(&opts.xOffset, "x-offset", 0, "horizontal offset")
	f.IntVar(&opts.yOffset, "y-offset", 0, "vertical offset")
	f.BoolVar(&opts.fixed, "fixed", false, "position against the viewport (top layer)")
	f.BoolVar(&opts.rtl, "rtl", false, "right-to-left inline direction")
	_ = cmd.MarkFlagRequired("anchor")
	_ = cmd.MarkFlagRequired("surface")
	return cmd
}

// solve returns label/value rows describing the placement.
func (o *placeOptions) solve() ([][]string, error) {
	a, err := parseInts("anchor", o.anchor, 4)
	if err != nil {
		return nil, err
	}
	s, err := parseInts("surface", o.surface, 2)
	if err != nil {
		return nil, err
	}
	v, err := parseInts("viewport", o.viewport, 2)
	if err != nil {
		return nil, err
	}
	anchorCorner, err := geometry.ParseCorner(o.anchorCorner)
	if err != nil {
		return nil, fmt.Errorf("anchor-corner: %w", err)
	}
	menuCorner, err := geometry.ParseCorner(o.menuCorner)
	if err != nil {
		return nil, fmt.Errorf("menu-corner: %w", err)
	}
	dir := geometry.LTR
	if o.rtl {
		dir = geometry.RTL
	}
	anchor := geometry.NewRect(a[0], a[1], a[2], a[3])
	size := geometry.Size{Width: s[0], Height: s[1]}
	viewport := geometry.Size{Width: v[0], Height: v[1]}
	res := geometry.Solve(geometry.Request{
		AnchorRect:    anchor,
		SurfaceRect:   geometry.Rect{Width: size.Width, Height: size.Height},
		AnchorCorner:  anchorCorner,
		SurfaceCorner: menuCorner,
		TopLayer:      o.fixed,
		XOffset:       o.xOffset,
		YOffset:       o.yOffset,
		Direction:     dir,
		Viewport:      viewport,
	})
	rect := geometry.Place(res, anchor, size, viewport, dir, o.fixed)
	return [][]string{
		{"block", res.BlockSide.String()},
		{"block-inset", strconv.Itoa(res.BlockInset)},
		{"inline", res.InlineSide.String()},
		{"inline-inset", strconv.Itoa(res.InlineInset)},
		{"rect", fmt.Sprintf("%d,%d,%d,%d", rect.Left, rect.Top, rect.Width, rect.Height)},
	}, nil
}

func parseInts(name, value string, n int) ([]int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%s: expected %d comma-separated integers, got %q", name, n, value)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if v < 0 && (name != "anchor" || i >= 2) {
			return nil, fmt.Errorf("%s: negative value %d", name, v)
		}
		out[i] = v
	}
	return out, nil
}
