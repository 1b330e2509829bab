// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config resolves kime's on-disk, YAML-shaped RawConfig into an
// immutable Config the rest of the engine can use without re-checking
// for missing fields (spec.md §4.7, §6). Loading never fails outward:
// a missing or malformed config file falls back to built-in defaults,
// matching spec.md §7 ("fallback to defaults never panics").
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gokime/kime/automaton"
	"github.com/gokime/kime/hotkey"
	"github.com/gokime/kime/keycode"
	"github.com/gokime/kime/layout"
)

// RawConfig is the literal shape of config.yaml: user-facing names for
// layouts, addons, and hotkeys, none of it yet validated against the
// engine's internal types.
type RawConfig struct {
	DefaultLayout  string               `yaml:"default_layout"`
	WordCommit     bool                 `yaml:"word_commit"`
	LayoutAddons   map[string][]string  `yaml:"layout_addons"`
	Hotkeys        map[string]rawHotkey `yaml:"hotkeys"`
	XimPreeditFont string               `yaml:"xim_preedit_font"`
}

type rawHotkey struct {
	Behavior string `yaml:"behavior"`
	Result   string `yaml:"result"`
}

// Config is the resolved, immutable configuration an InputEngine is
// built from.
type Config struct {
	DefaultLayout  layout.Name
	Layout         *layout.Layout
	Addons         automaton.Addon
	WordCommit     bool
	Hotkeys        hotkey.Table
	XimPreeditFont string
}

// DefaultRawConfig reproduces kime's shipped config.yaml (grounded on
// the original engine core's RawConfig::default): 두벌식 by default,
// with TreatJongseongAsChoseong enabled for it specifically, and the
// geminate/diphthong/cluster composes enabled for every layout via the
// "all" entry.
//
// This enables ComposeJungseongSsang and ComposeJongseongSsang under
// "all" where the original only enabled ComposeChoseongSsang there;
// without them ordinary diphthong/cluster formation (오+ㅣ=외, ㄹ+ㄱ=ㄺ)
// would not fire under the default config, which the testable scenarios
// require.
func DefaultRawConfig() RawConfig {
	return RawConfig{
		DefaultLayout: string(layout.Dubeolsik),
		WordCommit:    false,
		LayoutAddons: map[string][]string{
			"all":       {"ComposeChoseongSsang", "ComposeJungseongSsang", "ComposeJongseongSsang"},
			"dubeolsik": {"TreatJongseongAsChoseong"},
		},
	}
}

var addonByName = map[string]automaton.Addon{
	"ComposeChoseongSsang":     automaton.ComposeChoseongSsang,
	"ComposeJungseongSsang":    automaton.ComposeJungseongSsang,
	"ComposeJongseongSsang":    automaton.ComposeJongseongSsang,
	"DecomposeChoseongSsang":   automaton.DecomposeChoseongSsang,
	"DecomposeJungseongSsang":  automaton.DecomposeJungseongSsang,
	"DecomposeJongseongSsang":  automaton.DecomposeJongseongSsang,
	"FlexibleComposeOrder":     automaton.FlexibleComposeOrder,
	"TreatJongseongAsChoseong": automaton.TreatJongseongAsChoseong,
}

var behaviorByName = map[string]hotkey.Behavior{
	"ToggleHangul": hotkey.ToggleHangul,
	"ToHangul":     hotkey.ToHangul,
	"ToEnglish":    hotkey.ToEnglish,
	"Commit":       hotkey.Commit,
	"Emoji":        hotkey.Emoji,
	"Hanja":        hotkey.Hanja,
}

var resultByName = map[string]hotkey.Result{
	"Consume":            hotkey.Consume,
	"Bypass":             hotkey.Bypass,
	"ConsumeIfProcessed": hotkey.ConsumeIfProcessed,
}

// Resolve turns a RawConfig into an immutable Config: it loads the
// default layout (falling back to an empty layout on an unknown name,
// per layout.Builtin), unions the addon bits named for "all" and for
// the chosen layout, and overlays any hotkey overrides on the built-in
// table.
func Resolve(raw RawConfig) (*Config, error) {
	layoutName := layout.Name(raw.DefaultLayout)
	if layoutName == "" {
		layoutName = layout.Dubeolsik
	}

	table := hotkey.Default()
	for label, rh := range raw.Hotkeys {
		key, err := parseHotkeyLabel(label)
		if err != nil {
			return nil, fmt.Errorf("config.Resolve: hotkey %q: %w", label, err)
		}
		behavior, ok := behaviorByName[rh.Behavior]
		if !ok {
			return nil, fmt.Errorf("config.Resolve: hotkey %q: unknown behavior %q", label, rh.Behavior)
		}
		result, ok := resultByName[rh.Result]
		if !ok {
			return nil, fmt.Errorf("config.Resolve: hotkey %q: unknown result %q", label, rh.Result)
		}
		table[key] = hotkey.Hotkey{Behavior: behavior, Result: result}
	}

	return &Config{
		DefaultLayout:  layoutName,
		Layout:         layout.Builtin(layoutName),
		Addons:         resolveAddons(raw, layoutName),
		WordCommit:     raw.WordCommit,
		Hotkeys:        table,
		XimPreeditFont: raw.XimPreeditFont,
	}, nil
}

func resolveAddons(raw RawConfig, layoutName layout.Name) automaton.Addon {
	var addons automaton.Addon
	for _, name := range raw.LayoutAddons["all"] {
		addons |= addonByName[name]
	}
	for _, name := range raw.LayoutAddons[string(layoutName)] {
		addons |= addonByName[name]
	}
	return addons
}

// parseHotkeyLabel reads a "Mod1-Mod2-Key" combination string: modifier
// names (Shift, Control, Alt, Super) joined by dashes, then the key name.
func parseHotkeyLabel(label string) (keycode.Key, error) {
	parts := splitDash(label)
	if len(parts) == 0 {
		return keycode.Key{}, fmt.Errorf("empty hotkey label")
	}
	keyName := parts[len(parts)-1]
	code, ok := keyCodeByName[keyName]
	if !ok {
		return keycode.Key{}, fmt.Errorf("unknown key name %q", keyName)
	}
	var mods keycode.ModifierState
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "Shift":
			mods |= keycode.Shift
		case "Control":
			mods |= keycode.Control
		case "Alt":
			mods |= keycode.Alt
		case "Super":
			mods |= keycode.Super
		default:
			return keycode.Key{}, fmt.Errorf("unknown modifier %q", mod)
		}
	}
	return keycode.New(code, mods), nil
}

func splitDash(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// ConfigDir resolves kime's XDG config directory. No third-party XDG
// library appears anywhere in the retrieved pack, so this is one of the
// few places the standard library is used directly: os.UserConfigDir
// plus the XDG_CONFIG_HOME override it is missing on Linux.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kime"), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config.ConfigDir: %w", err)
	}
	return filepath.Join(base, "kime"), nil
}

// LoadYAML parses config.yaml content directly, useful for tests and for
// frontends embedding their own config source.
func LoadYAML(data []byte) (RawConfig, error) {
	raw := DefaultRawConfig()
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawConfig{}, fmt.Errorf("config.LoadYAML: %w", err)
	}
	return raw, nil
}

// Load resolves the user's config.yaml under the XDG config directory. A
// missing file yields DefaultRawConfig without logging; an unreadable
// file, malformed YAML, or an invalid hotkey falls back to
// DefaultRawConfig and logs why. Unknown addon names are ignored. A
// layout file at <config dir>/layouts/<layout>.yaml, when present,
// replaces the built-in layout of that name; a file that cannot be read
// or parsed is logged and the built-in is kept.
func Load() *Config {
	raw, err := loadRawConfigFile()
	if err != nil {
		slog.Warn("config.Load: falling back to defaults", "err", err)
		raw = DefaultRawConfig()
	}

	cfg, err := Resolve(raw)
	if err != nil {
		slog.Warn("config.Load: could not resolve config, falling back to defaults", "err", err)
		cfg, _ = Resolve(DefaultRawConfig())
	}
	if dir, err := ConfigDir(); err == nil {
		path := filepath.Join(dir, "layouts", string(cfg.DefaultLayout)+".yaml")
		if l, err := layout.LoadFile(path); err == nil {
			cfg.Layout = l
		} else if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("config.Load: keeping built-in layout", "err", err)
		}
	}
	return cfg
}

func loadRawConfigFile() (RawConfig, error) {
	dir, err := ConfigDir()
	if err != nil {
		return RawConfig{}, err
	}
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRawConfig(), nil
		}
		return RawConfig{}, fmt.Errorf("config.loadRawConfigFile: could not read %s: %w", path, err)
	}
	return LoadYAML(data)
}

// keyCodeByName mirrors layout's table for the subset of keys hotkeys
// are meaningfully bound to.
var keyCodeByName = map[string]keycode.KeyCode{
	"Esc": keycode.Esc, "Space": keycode.Space, "Tab": keycode.Tab,
	"Backspace": keycode.Backspace, "Enter": keycode.Enter,
	"Hangul": keycode.Hangul, "Muhenkan": keycode.Muhenkan,
	"HangulHanja": keycode.HangulHanja, "AltR": keycode.AltR,
	"ControlR": keycode.ControlR,
	"F9": keycode.F9,
	"A": keycode.A, "B": keycode.B, "C": keycode.C, "D": keycode.D,
	"E": keycode.E, "F": keycode.F, "G": keycode.G, "H": keycode.H,
	"I": keycode.I, "J": keycode.J, "K": keycode.K, "L": keycode.L,
	"M": keycode.M, "N": keycode.N, "O": keycode.O, "P": keycode.P,
	"Q": keycode.Q, "R": keycode.R, "S": keycode.S, "T": keycode.T,
	"U": keycode.U, "V": keycode.V, "W": keycode.W, "X": keycode.X,
	"Y": keycode.Y, "Z": keycode.Z,
}
