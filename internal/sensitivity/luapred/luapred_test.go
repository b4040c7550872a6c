package luapred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/quill/internal/focus"
)

type fakeContext struct{ win *focus.Window }

func (f fakeContext) FocussedWindow() *focus.Window { return f.win }

type view struct{}

func (view) Document() focus.Document { return nil }

func TestCompile_SyntaxError(t *testing.T) {
	_, err := Compile("broken", "return (")
	assert.Error(t, err)
}

func TestPredicate_NoWindow(t *testing.T) {
	p, err := Compile("p", "return ctx.has_window")
	require.NoError(t, err)

	v, ok := p.Evaluate(fakeContext{})
	assert.True(t, ok)
	assert.False(t, v)
}

func TestPredicate_ReadsFocusState(t *testing.T) {
	win := focus.NewWindow(nil)
	other := win.NewNotebook()
	require.NoError(t, other.AddTab(focus.NewToolTab("tree")))
	require.NoError(t, win.FocussedNotebook().AddTab(focus.NewEditTab("main.go", view{})))

	tests := []struct {
		src  string
		want bool
	}{
		{"return ctx.edit_tab", true},
		{"return ctx.tab_open", true},
		{"return ctx.notebook_count == 2", true},
		{"return ctx.other_notebook_tabs > 0", true},
		{"return ctx.tab_title == 'main.go'", true},
		{"return string.sub(ctx.tab_title, -3) == '.rb'", false},
	}

	for _, tt := range tests {
		p, err := Compile("p", tt.src)
		require.NoError(t, err, tt.src)
		v, ok := p.Evaluate(fakeContext{win: win})
		require.True(t, ok, tt.src)
		assert.Equal(t, tt.want, v, tt.src)
	}
}

func TestPredicate_NilMeansNothing(t *testing.T) {
	p, err := Compile("p", "if not ctx.has_window then return nil end return true")
	require.NoError(t, err)

	_, ok := p.Evaluate(fakeContext{})
	assert.False(t, ok)
	assert.NoError(t, p.LastError())
}

func TestPredicate_RuntimeErrorAndWrongType(t *testing.T) {
	p, err := Compile("boom", "error('nope')")
	require.NoError(t, err)
	_, ok := p.Evaluate(fakeContext{})
	assert.False(t, ok)
	assert.Error(t, p.LastError())

	p, err = Compile("str", "return 'yes'")
	require.NoError(t, err)
	_, ok = p.Evaluate(fakeContext{})
	assert.False(t, ok)
	assert.Error(t, p.LastError())
}

func TestPredicate_Sandboxed(t *testing.T) {
	p, err := Compile("io", "return io == nil and os == nil and dofile == nil")
	require.NoError(t, err)
	v, ok := p.Evaluate(fakeContext{})
	require.True(t, ok)
	assert.True(t, v)
}

func TestPredicate_NoStateBetweenEvaluations(t *testing.T) {
	p, err := Compile("counter", "counter = (counter or 0) + 1 return counter == 1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, ok := p.Evaluate(fakeContext{})
		require.True(t, ok)
		assert.True(t, v)
	}
}

func TestNew_WrapsSensitivity(t *testing.T) {
	s, err := New("edit_tab", false, []string{"tab_focussed"}, "return ctx.edit_tab")
	require.NoError(t, err)

	assert.Equal(t, "edit_tab", s.Name())
	assert.Equal(t, []string{"tab_focussed"}, s.DependsOn())
	assert.False(t, s.Value(fakeContext{}))
}
