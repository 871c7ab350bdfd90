package menufile

import (
	"sort"
	"time"

	"github.com/atomicstack/popup-menu/internal/menu"
)

// Options tune the menus built from a definition.
type Options struct {
	// Root is applied to the root menu's properties.
	Root func(p *menu.Props)
	// Submenu is applied to every submenu item after file overrides.
	Submenu func(s *menu.SubmenuItem)
}

// Tree is a built menu tree indexed by id.
type Tree struct {
	Title string
	Root  *menu.Menu
	menus map[string]*menu.Menu
	items map[string]menu.Item
}

// Build creates the menus and items of def on env.
func Build(def *Definition, env menu.Env, opts Options) (*Tree, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	t := &Tree{
		Title: def.Title,
		menus: make(map[string]*menu.Menu),
		items: make(map[string]menu.Item),
	}
	root, err := t.build(RootID, "", def.Items, env, opts)
	if err != nil {
		return nil, err
	}
	t.Root = root
	if opts.Root != nil {
		t.Root.Update(opts.Root)
	}
	return t, nil
}

func (t *Tree) build(menuID, prefix string, nodes []Node, env menu.Env, opts Options) (*menu.Menu, error) {
	m, err := menu.New(menuID, env)
	if err != nil {
		return nil, err
	}
	t.menus[menuID] = m
	for _, n := range nodes {
		if n.Divider {
			m.Add(menu.NewDivider())
			continue
		}
		id := JoinID(prefix, n.Label)
		if n.IsSubmenu() {
			sub, err := t.build(id, id, n.Items, env, opts)
			if err != nil {
				return nil, err
			}
			item := menu.NewSubmenuItem(id, n.Label, sub)
			item.SetDisabled(n.Disabled)
			if n.HoverDelayMS != nil {
				d := time.Duration(*n.HoverDelayMS) * time.Millisecond
				item.HoverOpenDelay, item.HoverCloseDelay = d, d
			}
			if opts.Submenu != nil {
				opts.Submenu(item)
			}
			t.items[id] = item
			m.Add(item)
			continue
		}
		value := n.Value
		if value == "" {
			value = n.Label
		}
		entry := menu.NewEntry(id, n.Label, value)
		entry.SetDisabled(n.Disabled)
		entry.Copy = n.Copy
		entry.KeepOpenOnClick = n.KeepOpen
		t.items[id] = entry
		m.Add(entry)
	}
	return m, nil
}

// Menu looks up a menu by id.
func (t *Tree) Menu(id string) (*menu.Menu, bool) {
	m, ok := t.menus[id]
	return m, ok
}

// Item looks up an item by id.
func (t *Tree) Item(id string) (menu.Item, bool) {
	it, ok := t.items[id]
	return it, ok
}

// MenuIDs returns every menu id, sorted.
func (t *Tree) MenuIDs() []string {
	ids := make([]string, 0, len(t.menus))
	for id := range t.menus {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
