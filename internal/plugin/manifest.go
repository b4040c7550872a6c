package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
	"github.com/dshills/quill/internal/platform"
	"github.com/dshills/quill/internal/sensitivity"
	"github.com/dshills/quill/internal/sensitivity/luapred"
)

// Manifest is the YAML form of a declarative plugin.
type Manifest struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	Menus         []MenuSpec        `yaml:"menus"`
	Keymaps       []KeymapSpec      `yaml:"keymaps"`
	Sensitivities []SensitivitySpec `yaml:"sensitivities"`

	path string
}

// MenuSpec declares one menu item.
type MenuSpec struct {
	Path      string   `yaml:"path"`
	Action    string   `yaml:"action"`
	Platforms []string `yaml:"platforms"`
	Sensitive []string `yaml:"sensitive"`
}

// KeymapSpec declares one keymap.
type KeymapSpec struct {
	Name      string   `yaml:"name"`
	Platforms []string `yaml:"platforms"`
	Bindings  Bindings `yaml:"bindings"`
}

// Bindings is an ordered chord to action mapping.
type Bindings []keymap.Binding

// UnmarshalYAML decodes a mapping node keeping the document order.
func (b *Bindings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: bindings must be a mapping", node.Line)
	}
	out := make(Bindings, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: action for %q must be a string", v.Line, k.Value)
		}
		out = append(out, keymap.Binding{Chord: k.Value, Action: v.Value})
	}
	*b = out
	return nil
}

// SensitivitySpec declares a Lua-backed sensitivity.
type SensitivitySpec struct {
	Name      string   `yaml:"name"`
	Default   bool     `yaml:"default"`
	DependsOn []string `yaml:"depends_on"`
	Lua       string   `yaml:"lua"`
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ParseManifest decodes and validates a manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.path = path
	return m, nil
}

// Validate checks required fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidManifest)
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: bad name %q", ErrInvalidManifest, m.Name)
	}
	for i, ms := range m.Menus {
		if len(menu.ParsePath(ms.Path)) == 0 {
			return fmt.Errorf("%w: menu %d has no path", ErrInvalidManifest, i)
		}
		if ms.Action == "" {
			return fmt.Errorf("%w: menu %q has no action", ErrInvalidManifest, ms.Path)
		}
	}
	for i, ks := range m.Keymaps {
		if ks.Name == "" {
			return fmt.Errorf("%w: keymap %d has no name", ErrInvalidManifest, i)
		}
	}
	for i, ss := range m.Sensitivities {
		if ss.Name == "" {
			return fmt.Errorf("%w: sensitivity %d has no name", ErrInvalidManifest, i)
		}
		if strings.TrimSpace(ss.Lua) == "" {
			return fmt.Errorf("%w: sensitivity %q has no lua body", ErrInvalidManifest, ss.Name)
		}
	}
	return nil
}

// Path returns the file the manifest was loaded from.
func (m *Manifest) Path() string { return m.path }

// Descriptor builds the plugin described by the manifest. Lua bodies are
// compiled here, so syntax errors surface at load time.
func (m *Manifest) Descriptor() (Descriptor, error) {
	p := &manifestPlugin{name: m.Name}

	if len(m.Menus) > 0 {
		p.menus = menu.NewTree()
		for _, ms := range m.Menus {
			platforms, err := parsePlatforms(ms.Platforms)
			if err != nil {
				return nil, fmt.Errorf("plugin %s menu %q: %w", m.Name, ms.Path, err)
			}
			p.menus.Add(menu.Item{
				Path:      menu.ParsePath(ms.Path),
				Action:    ms.Action,
				Platforms: platforms,
				Sensitive: ms.Sensitive,
			})
		}
	}

	for _, ks := range m.Keymaps {
		platforms, err := parsePlatforms(ks.Platforms)
		if err != nil {
			return nil, fmt.Errorf("plugin %s keymap %s: %w", m.Name, ks.Name, err)
		}
		km := keymap.New(ks.Name, platforms...)
		km.Source = "plugin:" + m.Name
		for _, b := range ks.Bindings {
			if err := km.Bind(b.Chord, b.Action); err != nil {
				return nil, fmt.Errorf("plugin %s keymap %s: %w", m.Name, ks.Name, err)
			}
		}
		p.keymaps = append(p.keymaps, km)
	}

	for _, ss := range m.Sensitivities {
		s, err := luapred.New(ss.Name, ss.Default, ss.DependsOn, ss.Lua)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", m.Name, err)
		}
		p.sensitivities = append(p.sensitivities, s)
	}
	return p, nil
}

func parsePlatforms(names []string) ([]platform.Platform, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]platform.Platform, 0, len(names))
	for _, n := range names {
		p, err := platform.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// manifestPlugin exposes exactly what its manifest declared.
type manifestPlugin struct {
	name          string
	menus         *menu.Tree
	keymaps       []*keymap.Keymap
	sensitivities []*sensitivity.Sensitivity
}

func (p *manifestPlugin) Name() string                              { return p.name }
func (p *manifestPlugin) Menus() *menu.Tree                         { return p.menus }
func (p *manifestPlugin) Keymaps() []*keymap.Keymap                 { return p.keymaps }
func (p *manifestPlugin) Sensitivities() []*sensitivity.Sensitivity { return p.sensitivities }

// LoadDir loads every *.yaml and *.yml manifest in dir, sorted by file
// name, and returns their descriptors. A missing directory yields nothing.
func LoadDir(dir string) ([]Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugin dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	out := make([]Descriptor, 0, len(files))
	for _, f := range files {
		m, err := LoadManifest(f)
		if err != nil {
			return nil, err
		}
		d, err := m.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, d)
	}
	return out, nil
}
