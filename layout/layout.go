// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package layout maps physical keys to Korean jamo. A Layout is keyed on
// (KeyCode, shift) and is loaded from a declarative YAML table, either a
// built-in embedded at build time or a user override from
// $XDG_CONFIG_HOME/kime/layouts. This package has no other I/O dependency:
// the four built-ins are always available even with no config directory
// present.
package layout

import (
	"embed"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/gokime/kime/jamo"
	"github.com/gokime/kime/keycode"
)

// Kind discriminates the three shapes a LayoutItem can take (spec.md §3).
type Kind int

const (
	// KindJamo is the common case: the key produces one jamo.
	KindJamo Kind = iota
	// KindChoice is a 세벌식 key that can act as either of two jamo
	// depending on automaton state; First is preferred.
	KindChoice
	// KindLiteral is a passthrough character, committed directly
	// without composition (punctuation, digits on Hangul-off, etc.).
	KindLiteral
)

// LayoutItem is what a Layout.Map lookup returns for a Key.
type LayoutItem struct {
	Kind          Kind
	Jamo          jamo.Glyph
	First, Second jamo.Glyph
	Literal       rune
}

// Name identifies one of the four built-in layouts.
type Name string

const (
	Dubeolsik        Name = "dubeolsik"
	Sebeolsik390     Name = "sebeolsik-390"
	Sebeolsik391     Name = "sebeolsik-391"
	SebeolsikSin1995 Name = "sebeolsik-sin1995"
)

// Layout is an immutable key -> LayoutItem table.
type Layout struct {
	name  Name
	items map[keycode.Key]LayoutItem
}

// Map is the sole lookup function a layout exposes (spec.md §4.3).
func (l *Layout) Map(key keycode.Key) (LayoutItem, bool) {
	if l == nil {
		return LayoutItem{}, false
	}
	item, ok := l.items[key]
	return item, ok
}

// Name returns the layout's builtin/registered name, or "" for an
// ad-hoc layout built with Default or from raw items.
func (l *Layout) Name() Name { return l.name }

// Default returns the empty layout used for Hangul-off behavior: every
// lookup misses and keys bypass straight to the application.
func Default() *Layout {
	return &Layout{items: map[keycode.Key]LayoutItem{}}
}

//go:embed data/*.yaml
var builtinLayouts embed.FS

// Builtin loads one of the four layouts embedded at build time. Unknown
// names fall back to Default(), matching the Rust source's
// load_builtin_layout! macro fallback (spec.md §9).
func Builtin(name Name) *Layout {
	data, err := builtinLayouts.ReadFile("data/" + string(name) + ".yaml")
	if err != nil {
		return Default()
	}
	l, err := LoadYAML(data)
	if err != nil {
		return Default()
	}
	l.name = name
	return l
}

// LoadFile reads a user-supplied layout override from
// $XDG_CONFIG_HOME/kime/layouts/<name>.yaml, matching the precedence
// RawConfig.from_raw_config gives to a user directory over the embedded
// defaults.
func LoadFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout.LoadFile: could not read %s: %w", path, err)
	}
	return LoadYAML(data)
}

// rawItem is the YAML shape of one layout entry.
type rawItem struct {
	Key     string `yaml:"key"`
	Shift   bool   `yaml:"shift"`
	Pos     string `yaml:"pos,omitempty"`
	Value   string `yaml:"value,omitempty"`
	Choice  *struct {
		FirstPos   string `yaml:"first_pos"`
		First      string `yaml:"first"`
		SecondPos  string `yaml:"second_pos"`
		Second     string `yaml:"second"`
	} `yaml:"choice,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// LoadYAML parses a mapping of Key -> LayoutItem from YAML text
// (spec.md §4.3, Layout::load_from).
func LoadYAML(data []byte) (*Layout, error) {
	var raw []rawItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("layout.LoadYAML: parse failed: %w", err)
	}

	l := &Layout{items: make(map[keycode.Key]LayoutItem, len(raw))}
	for _, r := range raw {
		kc, ok := keyCodeByName[r.Key]
		if !ok {
			return nil, fmt.Errorf("layout.LoadYAML: unknown key %q", r.Key)
		}
		mods := keycode.ModifierState(0)
		if r.Shift {
			mods = keycode.Shift
		}
		key := keycode.New(kc, mods)

		item, err := parseItem(r)
		if err != nil {
			return nil, fmt.Errorf("layout.LoadYAML: key %q: %w", r.Key, err)
		}
		l.items[key] = item
	}
	return l, nil
}

func parseItem(r rawItem) (LayoutItem, error) {
	if r.Literal != "" {
		// Hand-edited YAML may spell a literal in decomposed form;
		// normalize to NFC so every frontend commits the same bytes
		// for the same character regardless of layout source.
		runes := []rune(string(norm.NFC.Bytes([]byte(r.Literal))))
		if len(runes) != 1 {
			return LayoutItem{}, fmt.Errorf("literal must be exactly one character, got %q", r.Literal)
		}
		return LayoutItem{Kind: KindLiteral, Literal: runes[0]}, nil
	}
	if r.Choice != nil {
		first, err := glyphFrom(r.Choice.FirstPos, r.Choice.First)
		if err != nil {
			return LayoutItem{}, fmt.Errorf("choice.first: %w", err)
		}
		second, err := glyphFrom(r.Choice.SecondPos, r.Choice.Second)
		if err != nil {
			return LayoutItem{}, fmt.Errorf("choice.second: %w", err)
		}
		return LayoutItem{Kind: KindChoice, First: first, Second: second}, nil
	}
	g, err := glyphFrom(r.Pos, r.Value)
	if err != nil {
		return LayoutItem{}, err
	}
	return LayoutItem{Kind: KindJamo, Jamo: g}, nil
}

func glyphFrom(pos, value string) (jamo.Glyph, error) {
	switch pos {
	case "cho":
		c, ok := jamo.ChoseongByName(value)
		if !ok {
			return jamo.Glyph{}, fmt.Errorf("unknown choseong %q", value)
		}
		return jamo.ChoGlyph(c), nil
	case "jung":
		v, ok := jamo.JungseongByName(value)
		if !ok {
			return jamo.Glyph{}, fmt.Errorf("unknown jungseong %q", value)
		}
		return jamo.JungGlyph(v), nil
	case "jong":
		t, ok := jamo.JongseongByName(value)
		if !ok {
			return jamo.Glyph{}, fmt.Errorf("unknown jongseong %q", value)
		}
		return jamo.JongGlyph(t), nil
	default:
		return jamo.Glyph{}, fmt.Errorf("unknown position %q", pos)
	}
}

// keyCodeByName resolves the YAML key identifiers (the US-QWERTY key
// labels) to KeyCode. Kept separate from the hardware scancode table in
// keycode.FromHardwareCode since YAML authors type key labels, not
// hardware codes.
var keyCodeByName = map[string]keycode.KeyCode{
	"A": keycode.A, "B": keycode.B, "C": keycode.C, "D": keycode.D,
	"E": keycode.E, "F": keycode.F, "G": keycode.G, "H": keycode.H,
	"I": keycode.I, "J": keycode.J, "K": keycode.K, "L": keycode.L,
	"M": keycode.M, "N": keycode.N, "O": keycode.O, "P": keycode.P,
	"Q": keycode.Q, "R": keycode.R, "S": keycode.S, "T": keycode.T,
	"U": keycode.U, "V": keycode.V, "W": keycode.W, "X": keycode.X,
	"Y": keycode.Y, "Z": keycode.Z,
	"0": keycode.Key0, "1": keycode.Key1, "2": keycode.Key2, "3": keycode.Key3,
	"4": keycode.Key4, "5": keycode.Key5, "6": keycode.Key6, "7": keycode.Key7,
	"8": keycode.Key8, "9": keycode.Key9,
	"Minus": keycode.Minus, "Equal": keycode.Equal,
	"LeftBracket": keycode.LeftBracket, "RightBracket": keycode.RightBracket,
	"Backslash": keycode.Backslash, "Semicolon": keycode.Semicolon,
	"Quote": keycode.Quote, "Grave": keycode.Grave,
	"Comma": keycode.Comma, "Period": keycode.Period, "Slash": keycode.Slash,
	"Space": keycode.Space,
}
