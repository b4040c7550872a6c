package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chord parse errors.
var (
	ErrEmptyChord   = errors.New("empty chord")
	ErrInvalidChord = errors.New("invalid chord")
)

// Modifier is a bit set of modifier keys.
type Modifier uint8

// Modifier keys, in canonical output order.
const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"a":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
	"m":       ModMeta,
	"d":       ModMeta,
}

// namedKeys maps lowercase aliases to the canonical key name.
var namedKeys = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"cr":        "Enter",
	"esc":       "Escape",
	"escape":    "Escape",
	"tab":       "Tab",
	"backspace": "Backspace",
	"bs":        "Backspace",
	"space":     "Space",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PgUp",
	"pageup":    "PgUp",
	"pgdn":      "PgDn",
	"pagedown":  "PgDn",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"plus":      "Plus",
	"minus":     "Minus",
}

// NormalizeChord returns the canonical spelling of a key chord.
//
// Accepted spellings:
//
//	"Ctrl+S", "ctrl+s", "C-s", "<C-s>"   -> "Ctrl+S"
//	"Cmd+Shift+P", "<D-S-p>"             -> "Shift+Meta+P"
//	"F5", "esc", "<CR>"                  -> "F5", "Escape", "Enter"
//	"k", "K", "Shift+k"                  -> "k", "K", "K"
//	"-", "C--"                           -> "-", "Ctrl+-"
//
// Letters are case-insensitive under Ctrl, Alt or Meta, since terminals
// report those chords without case. A bare letter keeps its case and Shift
// on a bare letter becomes the upper-case letter.
//
// Space-separated sequences are normalised chord by chord.
func NormalizeChord(spec string) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", ErrEmptyChord
	}

	fields := strings.Fields(spec)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		c, err := normalizeOne(f)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	return strings.Join(out, " "), nil
}

func normalizeOne(spec string) (string, error) {
	var parts []string
	switch {
	case strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2:
		parts = splitKeepingTrailing(spec[1:len(spec)-1], "-")
	case len(spec) > 1 && strings.Contains(spec, "+"):
		parts = splitKeepingTrailing(spec, "+")
	case len(spec) > 1 && strings.Contains(spec, "-") && modifierPrefixed(spec, "-"):
		parts = splitKeepingTrailing(spec, "-")
	default:
		parts = []string{spec}
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return "", fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, spec)
		}
		mods |= mod
	}

	key, err := normalizeKey(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, spec)
	}
	if r, size := utf8.DecodeRuneInString(key); size == len(key) && unicode.IsLetter(r) {
		switch {
		case mods&(ModCtrl|ModAlt|ModMeta) != 0:
			key = string(unicode.ToUpper(r))
		case mods&ModShift != 0:
			key = string(unicode.ToUpper(r))
			mods &^= ModShift
		}
	}

	var b strings.Builder
	for _, m := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "Ctrl"}, {ModAlt, "Alt"}, {ModShift, "Shift"}, {ModMeta, "Meta"}} {
		if mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String(), nil
}

// modifierPrefixed reports whether every part of s before the last sep is a
// known modifier, as in "C-s" or "C-S-p".
func modifierPrefixed(s, sep string) bool {
	parts := splitKeepingTrailing(s, sep)
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[:len(parts)-1] {
		if _, ok := modifierNames[strings.ToLower(p)]; !ok {
			return false
		}
	}
	return true
}

// splitKeepingTrailing splits s on sep but treats a trailing separator as
// the key itself, so "Ctrl++" yields ["Ctrl", "+"].
func splitKeepingTrailing(s, sep string) []string {
	if strings.HasSuffix(s, sep+sep) {
		head := strings.Split(strings.TrimSuffix(s, sep+sep), sep)
		return append(head, sep)
	}
	return strings.Split(s, sep)
}

func normalizeKey(k string) (string, error) {
	k = strings.TrimSpace(k)
	if k == "" {
		return "", ErrInvalidChord
	}
	lower := strings.ToLower(k)
	if name, ok := namedKeys[lower]; ok {
		return name, nil
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		n := 0
		valid := true
		for _, r := range lower[1:] {
			if r < '0' || r > '9' {
				valid = false
				break
			}
			n = n*10 + int(r-'0')
		}
		if valid && n >= 1 && n <= 24 {
			return fmt.Sprintf("F%d", n), nil
		}
	}
	if utf8.RuneCountInString(k) == 1 {
		return k, nil
	}
	return "", ErrInvalidChord
}
