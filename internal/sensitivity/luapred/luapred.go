// Package luapred provides sensitivity predicates written in Lua.
//
// A predicate body is a Lua chunk that reads the global table ctx and
// returns a boolean, or nil when it cannot decide:
//
//	-- enabled when the focussed tab edits a document
//	return ctx.edit_tab
//
// The ctx table carries:
//
//	has_window          boolean
//	notebook_count      number
//	tab_open            boolean  focussed notebook has a focussed tab
//	tab_count           number   tabs in the focussed notebook
//	tab_title           string   title of the focussed tab, or nil
//	edit_tab            boolean  focussed tab is an edit tab
//	other_notebook_tabs number   tabs in the first non-focussed notebook
//
// The chunk is compiled once. Every evaluation runs in a fresh state with
// only the base, table, string and math libraries, so predicates cannot
// keep state between reads or reach the file system.
package luapred

import (
	"context"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/quill/internal/focus"
	"github.com/dshills/quill/internal/sensitivity"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 100 * time.Millisecond

// Predicate is a compiled Lua predicate.
type Predicate struct {
	name    string
	proto   *lua.FunctionProto
	timeout time.Duration
	lastErr error
}

// Option configures a Predicate.
type Option func(*Predicate)

// WithTimeout sets the evaluation timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Predicate) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// Compile compiles source. name is used in error messages.
func Compile(name, source string, opts ...Option) (*Predicate, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("parsing predicate %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compiling predicate %s: %w", name, err)
	}

	p := &Predicate{name: name, proto: proto, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// LastError returns the error of the most recent evaluation, if any.
func (p *Predicate) LastError() error {
	return p.lastErr
}

// Evaluate implements sensitivity.Predicate. Runtime errors and non-boolean
// results yield no value.
func (p *Predicate) Evaluate(ctx sensitivity.Context) (bool, bool) {
	p.lastErr = nil

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibraries(L)

	runCtx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	L.SetContext(runCtx)

	L.SetGlobal("ctx", contextTable(L, ctx))
	L.Push(L.NewFunctionFromProto(p.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		p.lastErr = fmt.Errorf("evaluating predicate %s: %w", p.name, err)
		return false, false
	}

	ret := L.Get(-1)
	switch v := ret.(type) {
	case lua.LBool:
		return bool(v), true
	case *lua.LNilType:
		return false, false
	default:
		p.lastErr = fmt.Errorf("predicate %s returned %s, want boolean or nil", p.name, ret.Type())
		return false, false
	}
}

func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

func contextTable(L *lua.LState, ctx sensitivity.Context) *lua.LTable {
	t := L.NewTable()

	var win *focus.Window
	if ctx != nil {
		win = ctx.FocussedWindow()
	}
	t.RawSetString("has_window", lua.LBool(win != nil))
	if win == nil {
		t.RawSetString("notebook_count", lua.LNumber(0))
		t.RawSetString("tab_open", lua.LFalse)
		t.RawSetString("tab_count", lua.LNumber(0))
		t.RawSetString("edit_tab", lua.LFalse)
		t.RawSetString("other_notebook_tabs", lua.LNumber(0))
		return t
	}

	t.RawSetString("notebook_count", lua.LNumber(len(win.Notebooks())))

	var tab focus.Tab
	tabCount := 0
	if nb := win.FocussedNotebook(); nb != nil {
		tab = nb.FocussedTab()
		tabCount = nb.Len()
	}
	t.RawSetString("tab_open", lua.LBool(tab != nil))
	t.RawSetString("tab_count", lua.LNumber(tabCount))
	t.RawSetString("edit_tab", lua.LBool(focus.EditViewOf(tab) != nil))
	if tab != nil {
		t.RawSetString("tab_title", lua.LString(tab.Title()))
	}

	others := 0
	if nb := win.NonFocussedNotebook(); nb != nil {
		others = nb.Len()
	}
	t.RawSetString("other_notebook_tabs", lua.LNumber(others))
	return t
}

// New compiles source and wraps it in a sensitivity.
func New(name string, def bool, dependsOn []string, source string, opts ...Option) (*sensitivity.Sensitivity, error) {
	p, err := Compile(name, source, opts...)
	if err != nil {
		return nil, err
	}
	return sensitivity.New(name, def, dependsOn, p), nil
}
