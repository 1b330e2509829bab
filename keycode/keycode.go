// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package keycode abstracts physical keyboard keys from platform specific
// hardware scancodes. It provides the evdev-compatible lookup table used
// to turn a raw (hardware_keycode, modifier_mask) pair coming from a GTK
// IM module, an XIM server, or the C ABI into the platform-neutral Key
// that the rest of the engine operates on.
package keycode

// KeyCode is a platform neutral physical key. Frontends are expected to
// convert their native scancode (evdev on Linux, XIM's raw keycode, etc.)
// into a KeyCode using FromHardwareCode before handing events to the
// engine.
type KeyCode int

const (
	Unknown KeyCode = iota

	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	Space
	Esc
	Backspace
	Enter
	Tab

	Minus
	Equal
	LeftBracket
	RightBracket
	Backslash
	Semicolon
	Quote
	Grave
	Comma
	Period
	Slash

	// Platform-neutral names for keys with no direct US-QWERTY analogue.
	Hangul      // Hangul/English toggle key present on Korean keyboards.
	Muhenkan    // Japanese 無変換 key, repurposed by some layouts as a toggle.
	HangulHanja // Hanja conversion key.
	AltR        // Right Alt, frequently remapped to ToggleHangul.
	ControlR    // Right Control, frequently remapped to Hanja.
)

// hardwareTable maps evdev keycodes (linux/input-event-codes.h KEY_*) to
// KeyCode. XIM and other frontends that receive a different numbering are
// expected to translate to evdev codes themselves before calling
// FromHardwareCode; the engine only understands one numbering so it stays
// a pure function of (code, modifiers).
var hardwareTable = map[uint16]KeyCode{
	1:  Esc,
	2:  Key1,
	3:  Key2,
	4:  Key3,
	5:  Key4,
	6:  Key5,
	7:  Key6,
	8:  Key7,
	9:  Key8,
	10: Key9,
	11: Key0,
	12: Minus,
	13: Equal,
	14: Backspace,
	15: Tab,
	16: Q,
	17: W,
	18: E,
	19: R,
	20: T,
	21: Y,
	22: U,
	23: I,
	24: O,
	25: P,
	26: LeftBracket,
	27: RightBracket,
	28: Enter,
	30: A,
	31: S,
	32: D,
	33: F,
	34: G,
	35: H,
	36: J,
	37: K,
	38: L,
	39: Semicolon,
	40: Quote,
	41: Grave,
	43: Backslash,
	44: Z,
	45: X,
	46: C,
	47: V,
	48: B,
	49: N,
	50: M,
	51: Comma,
	52: Period,
	53: Slash,
	57: Space,
	59: F1,
	60: F2,
	61: F3,
	62: F4,
	63: F5,
	64: F6,
	65: F7,
	66: F8,
	67: F9,
	68: F10,
	87: F11,
	88: F12,
	94: Muhenkan,
	97: ControlR,
	100: AltR,
	122: Hangul,
	123: HangulHanja,
}

// FromHardwareCode converts an evdev hardware keycode into a KeyCode.
// Unrecognized codes return (Unknown, false) and are treated as Bypass by
// the engine (spec.md §7: invalid hardware keycodes map to None).
func FromHardwareCode(code uint16) (KeyCode, bool) {
	kc, ok := hardwareTable[code]
	return kc, ok
}

// ModifierState is a bitset of the modifier keys held down for a Key
// event. Caps Lock and Num Lock are expected to be masked out by the
// frontend before the event reaches the engine.
type ModifierState uint8

const (
	Shift ModifierState = 1 << iota
	Control
	Alt
	Super
)

// Has reports whether every bit in mask is set.
func (m ModifierState) Has(mask ModifierState) bool {
	return m&mask == mask
}

// Key is the pair the engine matches against layouts and hotkeys.
// Equality and ordering are total so it doubles as a map key.
type Key struct {
	Code KeyCode
	Mods ModifierState
}

// New builds a Key from a code and an explicit modifier set.
func New(code KeyCode, mods ModifierState) Key {
	return Key{Code: code, Mods: mods}
}

// Normal builds a Key with no modifiers held.
func Normal(code KeyCode) Key {
	return Key{Code: code}
}

// WithShift builds a Key with only Shift held.
func WithShift(code KeyCode) Key {
	return Key{Code: code, Mods: Shift}
}

// WithSuper builds a Key with only Super held.
func WithSuper(code KeyCode) Key {
	return Key{Code: code, Mods: Super}
}

// WithControlAlt builds a Key with Control and Alt held, the combination
// the default hotkey table uses for the emoji picker.
func WithControlAlt(code KeyCode) Key {
	return Key{Code: code, Mods: Control | Alt}
}
