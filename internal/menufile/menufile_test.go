package menufile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popup-menu/internal/loop"
	"github.com/atomicstack/popup-menu/internal/menu"
)

const sample = `
title: main
items:
  - label: Apple
    value: apple
  - label: Fruit
    items:
      - label: Banana
      - label: Red Cherry
        items:
          - label: Morello
        hover_delay_ms: 0
  - divider: true
  - label: Copy me
    value: some text
    copy: true
  - label: Disabled entry
    disabled: true
`

func TestBuildRequiresLoop(t *testing.T) {
	def, err := Parse([]byte(sample))
	require.NoError(t, err)
	_, err = Build(def, menu.Env{}, Options{})
	assert.ErrorIs(t, err, loop.ErrMissingLoop)
}

func TestParseAndBuild(t *testing.T) {
	def, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "main", def.Title)

	want := []string{"root", "fruit", "fruit/red-cherry"}
	if diff := cmp.Diff(want, def.MenuIDs()); diff != "" {
		t.Fatalf("menu ids mismatch (-want +got):\n%s", diff)
	}

	tree, err := Build(def, menu.Env{Loop: loop.NewChan(16)}, Options{Root: func(p *menu.Props) { p.Fixed = true }})
	require.NoError(t, err)
	assert.Len(t, tree.Root.Rows(), 5)
	assert.Len(t, tree.Root.Items(), 4)
	assert.True(t, tree.Root.Props().Fixed)

	banana, ok := tree.Item("fruit/banana")
	require.True(t, ok)
	assert.Equal(t, "Banana", banana.Value(), "value defaults to the label")

	copyItem, ok := tree.Item("copy-me")
	require.True(t, ok)
	assert.True(t, copyItem.(*menu.Entry).Copy)

	disabled, _ := tree.Item("disabled-entry")
	assert.True(t, disabled.Disabled())

	cherry, ok := tree.Item("fruit/red-cherry")
	require.True(t, ok)
	sub := cherry.(*menu.SubmenuItem)
	assert.Equal(t, time.Duration(0), sub.HoverOpenDelay)
	fruit, _ := tree.Item("fruit")
	assert.Equal(t, menu.DefaultHoverDelay, fruit.(*menu.SubmenuItem).HoverOpenDelay)

	m, ok := tree.Menu("fruit/red-cherry")
	require.True(t, ok)
	assert.Same(t, sub.Submenu(), m)
	assert.Equal(t, sub, m.Owner())
	assert.Equal(t, []string{"fruit", "fruit/red-cherry", "root"}, tree.MenuIDs())
	tree.Root.Controller().Wait()
}

func TestParseRejectsEmptyMenus(t *testing.T) {
	for name, doc := range map[string]string{
		"root":    "title: x\nitems: []\n",
		"missing": "title: x\n",
	} {
		_, err := Parse([]byte(doc))
		if !errors.Is(err, ErrEmptyMenu) {
			t.Fatalf("%s: expected ErrEmptyMenu, got %v", name, err)
		}
	}
}

func TestParseRejectsBadRows(t *testing.T) {
	_, err := Parse([]byte("items:\n  - value: x\n"))
	assert.ErrorContains(t, err, "no label")

	_, err = Parse([]byte("items:\n  - label: A\n  - label: a\n"))
	assert.ErrorContains(t, err, "duplicate")

	_, err = Parse([]byte("items: [\n"))
	assert.ErrorContains(t, err, "parse menu")
}

func TestSubtree(t *testing.T) {
	def, err := Parse([]byte(sample))
	require.NoError(t, err)

	sub, err := def.Subtree("fruit/red-cherry")
	require.NoError(t, err)
	assert.Equal(t, "Red Cherry", sub.Title)
	assert.Equal(t, "Morello", sub.Items[0].Label)

	same, err := def.Subtree(RootID)
	require.NoError(t, err)
	assert.Same(t, def, same)

	_, err = def.Subtree("frut")
	require.ErrorIs(t, err, ErrUnknownMenu)
	assert.Contains(t, err.Error(), "did you mean fruit")

	_, err = def.Subtree("apple")
	require.ErrorIs(t, err, ErrUnknownMenu, "leaves are not menus")
}

func TestSuggest(t *testing.T) {
	ids := []string{"root", "fruit", "fruit/citrus", "tools"}
	assert.Equal(t, []string{"fruit/citrus"}, Suggest(ids, "ctrs"))
	assert.Empty(t, Suggest(ids, ""))
	assert.Empty(t, Suggest(ids, "zzz"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "main", def.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read menu file")
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}
