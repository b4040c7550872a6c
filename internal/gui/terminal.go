package gui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/keymap"
	"github.com/dshills/quill/internal/menu"
)

// ActionFunc receives the action bound to a key chord typed in frame.
type ActionFunc func(frame Frame, action string)

// Terminal is a Toolkit drawing on a tcell screen. Frames share the screen;
// the most recently shown open frame is the active one and receives keys.
type Terminal struct {
	mu       sync.Mutex
	screen   tcell.Screen
	frames   []*TerminalFrame
	active   *TerminalFrame
	onAction ActionFunc
	pending  string
	status   string
	stopped  bool
	logger   zerolog.Logger
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithScreen uses s instead of the process terminal.
func WithScreen(s tcell.Screen) TerminalOption {
	return func(t *Terminal) {
		t.screen = s
	}
}

// WithTerminalLogger sets the toolkit logger.
func WithTerminalLogger(l zerolog.Logger) TerminalOption {
	return func(t *Terminal) {
		t.logger = l.With().Str("component", "terminal").Logger()
	}
}

// NewTerminal creates a terminal toolkit. Call Init before Run.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	t := &Terminal{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating terminal screen: %w", err)
		}
		t.screen = s
	}
	return t, nil
}

// Init initialises the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initialising terminal: %w", err)
	}
	t.screen.EnablePaste()
	t.screen.Clear()
	return nil
}

// OnAction sets the function called for every bound chord.
func (t *Terminal) OnAction(fn ActionFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onAction = fn
}

// NewFrame implements Toolkit.
func (t *Terminal) NewFrame(title string) Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := &TerminalFrame{term: t, title: title}
	t.frames = append(t.frames, f)
	return f
}

// Frames returns every frame that has not been closed.
func (t *Terminal) Frames() []*TerminalFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*TerminalFrame, 0, len(t.frames))
	for _, f := range t.frames {
		if !f.closed {
			out = append(out, f)
		}
	}
	return out
}

// Active returns the frame receiving keys, or nil.
func (t *Terminal) Active() *TerminalFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Stop implements Toolkit. It wakes Run, which returns after finalising
// the screen. Stop may be called from an action handler.
func (t *Terminal) Stop() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // wake PollEvent
}

// Stopped reports whether Stop was called.
func (t *Terminal) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Run polls screen events until Stop is called or ctx is done. Key events
// are translated to chords and looked up in the active frame's keymap.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-done:
		}
	}()

	for {
		if t.Stopped() {
			return nil
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(e)
		case *tcell.EventResize:
			t.screen.Sync()
			t.redraw()
		case *tcell.EventInterrupt:
		}
	}
}

func (t *Terminal) handleKey(e *tcell.EventKey) {
	chord, ok := ChordFromEvent(e)
	if !ok {
		return
	}

	t.mu.Lock()
	f := t.active
	fn := t.onAction
	if f == nil || f.keymap == nil {
		t.pending = ""
		t.mu.Unlock()
		return
	}
	candidate := chord
	if t.pending != "" {
		candidate = t.pending + " " + chord
	}
	action, bound := f.keymap.Action(candidate)
	switch {
	case bound:
		t.pending = ""
		t.status = action
	case hasPrefix(f.keymap, candidate):
		t.pending = candidate
		t.status = candidate + " -"
	default:
		t.pending = ""
		t.status = candidate + " is not bound"
	}
	t.mu.Unlock()

	t.logger.Debug().Str("chord", candidate).Str("action", action).Msg("key")
	t.redraw()
	if bound && fn != nil {
		fn(f, action)
	}
}

func hasPrefix(km *keymap.Keymap, seq string) bool {
	prefix := seq + " "
	for _, b := range km.Bindings() {
		if strings.HasPrefix(b.Chord, prefix) {
			return true
		}
	}
	return false
}

// redraw paints the active frame: a title bar with the top-level menu
// labels and a status line.
func (t *Terminal) redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	bar := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, 0, ' ', nil, bar)
	}
	if f := t.active; f != nil {
		x := drawText(t.screen, 0, 0, f.title, bar.Bold(true))
		if f.menu != nil {
			for _, label := range f.menu.Children() {
				x = drawText(t.screen, x+2, 0, label, bar)
			}
		}
	}
	if h > 1 {
		drawText(t.screen, 0, h-1, t.status, tcell.StyleDefault)
	}
	t.screen.Show()
}

func (t *Terminal) show(f *TerminalFrame) {
	t.mu.Lock()
	f.visible = true
	t.active = f
	t.mu.Unlock()
	t.redraw()
}

func (t *Terminal) close(f *TerminalFrame) {
	t.mu.Lock()
	f.visible = false
	f.closed = true
	if t.active == f {
		t.active = nil
		for i := len(t.frames) - 1; i >= 0; i-- {
			if c := t.frames[i]; c.visible && !c.closed {
				t.active = c
				break
			}
		}
	}
	t.mu.Unlock()
	t.redraw()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// TerminalFrame is one window drawn by a Terminal.
type TerminalFrame struct {
	term      *Terminal
	title     string
	visible   bool
	closed    bool
	menu      *menu.Tree
	keymap    *keymap.Keymap
	refreshes int
}

// Title returns the frame title.
func (f *TerminalFrame) Title() string { return f.title }

// Show implements Frame.
func (f *TerminalFrame) Show() { f.term.show(f) }

// Close implements Frame.
func (f *TerminalFrame) Close() { f.term.close(f) }

// SetMenu implements Frame.
func (f *TerminalFrame) SetMenu(tree *menu.Tree) {
	f.term.mu.Lock()
	defer f.term.mu.Unlock()
	f.menu = tree
}

// SetKeymap implements Frame.
func (f *TerminalFrame) SetKeymap(km *keymap.Keymap) {
	f.term.mu.Lock()
	defer f.term.mu.Unlock()
	f.keymap = km
}

// RefreshMenu implements Frame.
func (f *TerminalFrame) RefreshMenu() {
	f.term.mu.Lock()
	f.refreshes++
	active := f.term.active == f
	f.term.mu.Unlock()
	if active {
		f.term.redraw()
	}
}

var namedTcellKeys = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Shift+Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyCtrlSpace:  "Ctrl+Space",
}

// ChordFromEvent returns the canonical chord for a key event. Shift is
// dropped for printable runes, whose case already carries it.
func ChordFromEvent(e *tcell.EventKey) (string, bool) {
	mods := e.Modifiers()
	var key string

	switch k := e.Key(); {
	case k == tcell.KeyRune:
		r := e.Rune()
		if r == ' ' {
			key = "Space"
		} else {
			key = string(r)
		}
		mods &^= tcell.ModShift
	case namedTcellKeys[k] != "":
		key = namedTcellKeys[k]
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		key = string(rune('A' + (k - tcell.KeyCtrlA)))
		mods |= tcell.ModCtrl
	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		key = fmt.Sprintf("F%d", k-tcell.KeyF1+1)
	default:
		return "", false
	}

	var b strings.Builder
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}
	if mods&tcell.ModMeta != 0 {
		b.WriteString("Meta+")
	}
	b.WriteString(key)

	chord, err := keymap.NormalizeChord(b.String())
	if err != nil {
		return "", false
	}
	return chord, true
}
