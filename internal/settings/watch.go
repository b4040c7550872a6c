package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads loaded namespaces whose file changes on disk. It blocks
// until ctx is done. Namespaces not yet opened are picked up by Namespace.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watching %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			s.handle(ev)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("settings watcher error")
		}
	}
}

func (s *Store) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || filepath.Ext(base) != fileExt {
		return
	}
	name := strings.TrimSuffix(base, fileExt)
	ns, ok := s.open(name)
	if !ok {
		return
	}
	if err := ns.Reload(); err != nil {
		s.logger.Warn().Err(err).Str("namespace", name).Msg("settings reload failed")
		return
	}
	s.logger.Debug().Str("namespace", name).Msg("settings reloaded")
	if s.onReload != nil {
		s.onReload(name)
	}
}
