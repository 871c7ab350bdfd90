// Package menufile loads menu trees from YAML.
//
//	title: main
//	items:
//	  - label: Apple
//	    value: apple
//	  - label: Fruit
//	    items:
//	      - label: Banana
//	  - divider: true
//
// Every node with items becomes a submenu. Ids are the lower-cased label
// path joined with "/", e.g. "fruit/banana".
package menufile

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"
)

// RootID names the top level menu.
const RootID = "root"

var (
	ErrEmptyMenu   = errors.New("menu has no items")
	ErrUnknownMenu = errors.New("unknown menu")
)

// Definition is a parsed menu file.
type Definition struct {
	Title string `yaml:"title"`
	Items []Node `yaml:"items"`
}

// Node is one row of a menu.
type Node struct {
	Label    string `yaml:"label"`
	Value    string `yaml:"value"`
	Items    []Node `yaml:"items"`
	Disabled bool   `yaml:"disabled"`
	Copy     bool   `yaml:"copy"`
	Divider  bool   `yaml:"divider"`
	KeepOpen bool   `yaml:"keep_open"`
	// HoverDelayMS overrides the submenu hover open and close delay.
	HoverDelayMS *int `yaml:"hover_delay_ms"`
}

// IsSubmenu reports whether the node opens a nested menu.
func (n Node) IsSubmenu() bool { return len(n.Items) > 0 }

// Load reads and parses a menu file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a menu definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks that every menu has items and every row a label, and
// that ids are unique.
func (d *Definition) Validate() error {
	seen := make(map[string]struct{})
	return validateNodes(d.Items, "", RootID, seen)
}

func validateNodes(nodes []Node, prefix, menuID string, seen map[string]struct{}) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%s: %w", menuID, ErrEmptyMenu)
	}
	for i, n := range nodes {
		if n.Divider {
			continue
		}
		if strings.TrimSpace(n.Label) == "" {
			return fmt.Errorf("%s: item %d has no label", menuID, i+1)
		}
		id := JoinID(prefix, n.Label)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate menu id %q", id)
		}
		seen[id] = struct{}{}
		if n.IsSubmenu() {
			if err := validateNodes(n.Items, id, id, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

var idUnsafe = regexp.MustCompile(`\s+`)

// Slug turns a label into an id segment.
func Slug(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "/", "-")
	return idUnsafe.ReplaceAllString(s, "-")
}

// JoinID appends a label to an id path.
func JoinID(prefix, label string) string {
	if prefix == "" {
		return Slug(label)
	}
	return prefix + "/" + Slug(label)
}

// MenuIDs lists the root and every submenu id, sorted.
func (d *Definition) MenuIDs() []string {
	ids := []string{RootID}
	var walk func(nodes []Node, prefix string)
	walk = func(nodes []Node, prefix string) {
		for _, n := range nodes {
			if !n.IsSubmenu() {
				continue
			}
			id := JoinID(prefix, n.Label)
			ids = append(ids, id)
			walk(n.Items, id)
		}
	}
	walk(d.Items, "")
	sort.Strings(ids[1:])
	return ids
}

// Subtree returns the definition rooted at the submenu with the given id.
// Unknown ids fail with ErrUnknownMenu and the closest known ids.
func (d *Definition) Subtree(id string) (*Definition, error) {
	if id == "" || id == RootID {
		return d, nil
	}
	nodes, prefix := d.Items, ""
	var found *Node
	for _, part := range strings.Split(id, "/") {
		found = nil
		for i := range nodes {
			if nodes[i].IsSubmenu() && JoinID(prefix, nodes[i].Label) == JoinID(prefix, part) {
				found = &nodes[i]
				break
			}
		}
		if found == nil {
			break
		}
		prefix = JoinID(prefix, found.Label)
		nodes = found.Items
	}
	if found == nil || prefix != id {
		if hints := Suggest(d.MenuIDs(), id); len(hints) > 0 {
			return nil, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownMenu, id, strings.Join(hints, ", "))
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownMenu, id)
	}
	return &Definition{Title: found.Label, Items: found.Items}, nil
}

// Suggest returns up to three ids that fuzzily match query, best first.
func Suggest(ids []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, ids)
	if len(ranks) == 0 {
		// fall back to matching the last path segment
		last := query[strings.LastIndex(query, "/")+1:]
		ranks = fuzzy.RankFindNormalizedFold(last, ids)
	}
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// Default is the menu shown when no file is given.
func Default() *Definition {
	return &Definition{
		Title: "popup-menu",
		Items: []Node{
			{Label: "Apple", Value: "apple"},
			{Label: "Apricot", Value: "apricot"},
			{Label: "Banana", Value: "banana"},
			{Label: "Fruit", Items: []Node{
				{Label: "Cherry", Value: "cherry"},
				{Label: "Citrus", Items: []Node{
					{Label: "Lemon", Value: "lemon"},
					{Label: "Lime", Value: "lime"},
					{Label: "Orange", Value: "orange"},
				}},
				{Label: "Grape", Value: "grape"},
			}},
			{Divider: true},
			{Label: "Copy greeting", Value: "hello from popup-menu", Copy: true},
			{Label: "Unavailable", Disabled: true},
		},
	}
}
