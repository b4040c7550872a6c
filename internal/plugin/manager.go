package plugin

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
	"github.com/dshills/quill/internal/sensitivity"
)

// Descriptor is a loaded plugin.
type Descriptor interface {
	Name() string
}

// MenuContributor is implemented by plugins that contribute menu items.
// A nil tree means nothing is contributed.
type MenuContributor interface {
	Menus() *menu.Tree
}

// KeymapContributor is implemented by plugins that contribute keymaps.
type KeymapContributor interface {
	Keymaps() []*keymap.Keymap
}

// SensitivityContributor is implemented by plugins that contribute
// sensitivities.
type SensitivityContributor interface {
	Sensitivities() []*sensitivity.Sensitivity
}

// Loaded is a plugin together with its resolved contributions.
type Loaded struct {
	Descriptor Descriptor

	// Menus is nil when the plugin contributes no menu.
	Menus *menu.Tree

	// Keymaps is nil when the plugin contributes no keymap.
	Keymaps []*keymap.Keymap

	// Sensitivities is nil when the plugin contributes none.
	Sensitivities []*sensitivity.Sensitivity
}

// Name returns the plugin name.
func (l *Loaded) Name() string {
	return l.Descriptor.Name()
}

// resolve queries the optional capabilities of d once.
func resolve(d Descriptor) *Loaded {
	l := &Loaded{Descriptor: d}
	if mc, ok := d.(MenuContributor); ok {
		l.Menus = mc.Menus()
	}
	if kc, ok := d.(KeymapContributor); ok {
		l.Keymaps = kc.Keymaps()
	}
	if sc, ok := d.(SensitivityContributor); ok {
		l.Sensitivities = sc.Sensitivities()
	}
	return l
}

// Manager keeps loaded plugins in load order.
type Manager struct {
	plugins   map[string]*Loaded
	loadOrder []*Loaded
	logger    zerolog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(l zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l.With().Str("component", "plugin").Logger()
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		plugins: make(map[string]*Loaded),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load appends d to the load order and resolves its contributions.
func (m *Manager) Load(d Descriptor) (*Loaded, error) {
	if d == nil {
		return nil, ErrNilDescriptor
	}
	name := d.Name()
	if _, exists := m.plugins[name]; exists {
		return nil, fmt.Errorf("plugin %q: %w", name, ErrAlreadyLoaded)
	}

	l := resolve(d)
	m.plugins[name] = l
	m.loadOrder = append(m.loadOrder, l)

	m.logger.Debug().
		Str("plugin", name).
		Bool("menus", l.Menus != nil).
		Int("keymaps", len(l.Keymaps)).
		Int("sensitivities", len(l.Sensitivities)).
		Msg("plugin loaded")
	return l, nil
}

// LoadAll loads every descriptor in order and stops at the first error.
func (m *Manager) LoadAll(ds ...Descriptor) error {
	for _, d := range ds {
		if _, err := m.Load(d); err != nil {
			return err
		}
	}
	return nil
}

// Loaded returns the loaded plugins in load order.
func (m *Manager) Loaded() []*Loaded {
	return append([]*Loaded(nil), m.loadOrder...)
}

// Get returns a loaded plugin by name.
func (m *Manager) Get(name string) (*Loaded, error) {
	l, ok := m.plugins[name]
	if !ok {
		return nil, fmt.Errorf("plugin %q: %w", name, ErrPluginNotFound)
	}
	return l, nil
}

// Len returns the number of loaded plugins.
func (m *Manager) Len() int {
	return len(m.loadOrder)
}
