// Package settings provides namespaced key/value settings persisted as TOML.
//
// Each namespace lives in its own file, <dir>/<name>.toml:
//
//	store, _ := settings.NewStore(dir)
//	ns, _ := store.Namespace("application_plugin")
//	ns.GetWithDefault("stay_resident_after_last_window_closed", "no")
//
// Values are strings. Non-string TOML values are read back in their
// formatted form. Watch reloads namespaces edited on disk.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// ErrInvalidNamespace is returned for namespace names that cannot be used
// as file names.
var ErrInvalidNamespace = errors.New("invalid settings namespace")

const fileExt = ".toml"

var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Store owns the namespaces of one settings directory.
type Store struct {
	dir    string
	logger zerolog.Logger

	mu         sync.Mutex
	namespaces map[string]*Storage
	onReload   func(namespace string)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l.With().Str("component", "settings").Logger()
	}
}

// WithReloadHook registers fn to run after Watch reloads a namespace.
func WithReloadHook(fn func(namespace string)) Option {
	return func(s *Store) {
		s.onReload = fn
	}
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating settings dir: %w", err)
	}
	s := &Store{
		dir:        dir,
		logger:     zerolog.Nop(),
		namespaces: make(map[string]*Storage),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the settings directory.
func (s *Store) Dir() string { return s.dir }

// Namespace returns the storage for name, loading it on first use.
// The same *Storage is returned on every call.
func (s *Store) Namespace(name string) (*Storage, error) {
	if !namespacePattern.MatchString(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ns, ok := s.namespaces[name]; ok {
		return ns, nil
	}
	ns := &Storage{
		name:   name,
		path:   filepath.Join(s.dir, name+fileExt),
		values: make(map[string]string),
	}
	if err := ns.Reload(); err != nil {
		return nil, err
	}
	s.namespaces[name] = ns
	return ns, nil
}

// open returns an already loaded namespace.
func (s *Store) open(name string) (*Storage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.namespaces[name]
	return ns, ok
}

// Storage is one settings namespace. It is safe for concurrent use.
type Storage struct {
	name string
	path string

	mu     sync.RWMutex
	values map[string]string
}

// Name returns the namespace name.
func (n *Storage) Name() string { return n.name }

// Path returns the backing file.
func (n *Storage) Path() string { return n.path }

// Get returns the value stored under key.
func (n *Storage) Get(key string) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.values[key]
	return v, ok
}

// GetWithDefault returns the value stored under key, or def.
func (n *Storage) GetWithDefault(key, def string) string {
	if v, ok := n.Get(key); ok {
		return v
	}
	return def
}

// Keys returns the stored keys, sorted.
func (n *Storage) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under key and writes the namespace file.
func (n *Storage) Set(key, value string) error {
	if key == "" {
		return errors.New("settings key is empty")
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	prev, had := n.values[key]
	n.values[key] = value
	if err := n.writeLocked(); err != nil {
		if had {
			n.values[key] = prev
		} else {
			delete(n.values, key)
		}
		return err
	}
	return nil
}

// Delete removes key and writes the namespace file.
func (n *Storage) Delete(key string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.values[key]; !ok {
		return nil
	}
	delete(n.values, key)
	return n.writeLocked()
}

// Reload replaces the in-memory values with the file contents.
// A missing file is an empty namespace.
func (n *Storage) Reload() error {
	data, err := os.ReadFile(n.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading settings %s: %w", n.path, err)
	}

	values := make(map[string]string)
	if len(data) > 0 {
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing settings %s: %w", n.path, err)
		}
		for k, v := range raw {
			if s, ok := v.(string); ok {
				values[k] = s
				continue
			}
			values[k] = fmt.Sprint(v)
		}
	}

	n.mu.Lock()
	n.values = values
	n.mu.Unlock()
	return nil
}

// writeLocked writes the namespace through a temporary file and rename.
func (n *Storage) writeLocked() error {
	data, err := toml.Marshal(n.values)
	if err != nil {
		return fmt.Errorf("encoding settings %s: %w", n.name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(n.path), "."+n.name+"-*")
	if err != nil {
		return fmt.Errorf("writing settings %s: %w", n.name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings %s: %w", n.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings %s: %w", n.name, err)
	}
	if err := os.Rename(tmp.Name(), n.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing settings %s: %w", n.name, err)
	}
	return nil
}
