// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package hotkey maps keys that never reach the composition automaton
// onto engine-level behaviors (spec.md §4.5): toggling Hangul mode,
// forcing a mode, committing the in-flight preedit, or opening the
// emoji/hanja picker.
package hotkey

import "github.com/gokime/kime/keycode"

// Behavior is the action a hotkey requests of the engine facade.
type Behavior int

const (
	ToggleHangul Behavior = iota
	ToHangul
	ToEnglish
	Commit
	Emoji
	Hanja
)

// Result tells the frontend what to do with the key event once the
// behavior has run.
type Result int

const (
	// Consume always swallows the key; the frontend never sees it.
	Consume Result = iota
	// Bypass always forwards the key to the application, in addition to
	// running the behavior.
	Bypass
	// ConsumeIfProcessed swallows the key only when running the behavior
	// actually changed engine state (e.g. Commit only consumes when there
	// was text to commit; Emoji/Hanja change no engine state, so they
	// never consume under this policy).
	ConsumeIfProcessed
)

// Hotkey binds one key combination to a behavior and its result policy.
type Hotkey struct {
	Behavior Behavior
	Result   Result
}

// Table is the active key-combination -> Hotkey map. A single map lookup
// keyed on the full Key (code + modifiers), so "Ctrl+Alt+E" and "E" are
// distinct entries.
type Table map[keycode.Key]Hotkey

// Lookup reports the hotkey bound to key, if any.
func (t Table) Lookup(key keycode.Key) (Hotkey, bool) {
	h, ok := t[key]
	return h, ok
}

// Default returns kime's built-in hotkey table (grounded on the original
// engine core's RawConfig::default hotkey list): Esc leaves Hangul mode
// without consuming the key, Hangul/Muhenkan/Alt_R/Super+Space toggle
// Hangul mode, F9/Control_R/Hangul_Hanja are bound to Hanja and always
// consume the key, and Ctrl+Alt+E is bound to Emoji with
// ConsumeIfProcessed.
func Default() Table {
	return Table{
		keycode.Normal(keycode.Esc):         {ToEnglish, Bypass},
		keycode.Normal(keycode.Hangul):      {ToggleHangul, Consume},
		keycode.Normal(keycode.Muhenkan):    {ToggleHangul, Consume},
		keycode.Normal(keycode.AltR):        {ToggleHangul, Consume},
		keycode.WithSuper(keycode.Space):    {ToggleHangul, Consume},
		keycode.Normal(keycode.F9):          {Hanja, Consume},
		keycode.Normal(keycode.ControlR):    {Hanja, Consume},
		keycode.Normal(keycode.HangulHanja): {Hanja, Consume},
		keycode.WithControlAlt(keycode.E):   {Emoji, ConsumeIfProcessed},
	}
}
