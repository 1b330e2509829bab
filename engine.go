// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package kime is a Korean Hangul input method engine: it turns
// hardware key events into a composed preedit string and, when a
// syllable closes, a commit string, independent of any particular
// frontend (XIM, GTK/Qt input method module, or the C ABI in package
// capi). engine.go holds InputEngine, the single user-facing type; it
// delegates the actual composition rules to package automaton and the
// physical-key-to-jamo mapping to package layout, the same way the
// original engine kept its device-facing App thin and pushed behavior
// into component managers.
package kime

import (
	"github.com/gokime/kime/automaton"
	"github.com/gokime/kime/config"
	"github.com/gokime/kime/hotkey"
	"github.com/gokime/kime/jamo"
	"github.com/gokime/kime/keycode"
	"github.com/gokime/kime/layout"
)

// InputEngine is a single input context: one InputEngine per focused
// text field. It is not safe for concurrent use by multiple goroutines
// (spec.md's concurrency model gives each frontend connection exactly
// one InputEngine on its own goroutine).
type InputEngine struct {
	cfg    *config.Config
	hangul bool
	state  automaton.PreeditState

	// lastCommit holds the text PressKey/Flush/FocusOut most recently
	// finalized. CommitStr reads it; the next PressKey call clears it.
	// This pull model mirrors PreeditStr/CommitStr as accessors rather
	// than callback arguments, matching spec.md §4.6.
	lastCommit string

	// wordBuffer accumulates closed syllables under cfg.WordCommit
	// instead of releasing them to lastCommit immediately; a boundary
	// event (a literal key, an unmapped key, a mode switch, or an
	// explicit Commit/Flush) drains it into lastCommit as one unit.
	wordBuffer string

	// preeditWindow and hasPreeditWindow track where an off-the-spot
	// frontend (one that cannot draw preedit text inline in the focused
	// widget) wants a floating preedit window shown, and with what
	// character. The engine only remembers this request; forwarding it
	// to the actual window process over IPC is the frontend/daemon's
	// job (package ipc's MsgSpawnPreeditWindow/MsgRemovePreeditWindow).
	preeditWindow    PreeditWindow
	hasPreeditWindow bool
}

// PreeditWindow is the screen position and character an off-the-spot
// frontend last asked the engine to display in a floating preedit
// window (spec.md §6; mirrors the original engine's
// update_preedit/remove_preedit pair).
type PreeditWindow struct {
	X, Y uint32
	Ch   rune
}

// UpdatePreeditWindow records where a floating preedit window should be
// drawn and which character it should show.
func (e *InputEngine) UpdatePreeditWindow(x, y uint32, ch rune) {
	e.preeditWindow = PreeditWindow{X: x, Y: y, Ch: ch}
	e.hasPreeditWindow = true
}

// RemovePreeditWindow clears any pending floating preedit window
// request.
func (e *InputEngine) RemovePreeditWindow() {
	e.hasPreeditWindow = false
	e.preeditWindow = PreeditWindow{}
}

// PreeditWindowState reports the most recently requested floating
// preedit window, if one is currently pending.
func (e *InputEngine) PreeditWindowState() (PreeditWindow, bool) {
	return e.preeditWindow, e.hasPreeditWindow
}

// New builds an InputEngine starting in Hangul mode, using cfg for its
// layout, addons, and hotkey table.
func New(cfg *config.Config) *InputEngine {
	return &InputEngine{cfg: cfg, hangul: true}
}

// PreeditStr returns the in-flight syllable, or "" when empty.
func (e *InputEngine) PreeditStr() string { return e.state.String() }

// CommitStr returns the text finalized by the most recent PressKey,
// Flush, or FocusOut call.
func (e *InputEngine) CommitStr() string { return e.lastCommit }

// IsHangul reports whether the engine is currently in Hangul mode (as
// opposed to passing every key straight through as English/Bypass).
func (e *InputEngine) IsHangul() bool { return e.hangul }

// Reset drops any in-flight preedit without committing it.
func (e *InputEngine) Reset() {
	e.state.Reset()
	e.lastCommit = ""
}

// commitSyllable records one closed syllable (or a literal's preceding
// flush) as finalized text. Under word-commit mode it joins wordBuffer
// instead of releasing straight to lastCommit (spec.md §4.4's
// "word-commit mode": committed syllables accumulate until a boundary).
func (e *InputEngine) commitSyllable(text string) {
	if text == "" {
		return
	}
	if e.cfg.WordCommit {
		e.wordBuffer += text
	} else {
		e.lastCommit += text
	}
}

// drainWord releases any buffered word-commit text into lastCommit. A
// no-op outside word-commit mode, where wordBuffer is never populated.
func (e *InputEngine) drainWord() {
	e.lastCommit += e.wordBuffer
	e.wordBuffer = ""
}

// Flush finalizes any in-flight preedit and any buffered word-commit
// text into CommitStr, as if the frontend were about to switch contexts
// mid-syllable.
func (e *InputEngine) Flush() InputResult {
	e.lastCommit = ""
	e.commitSyllable(e.state.Flush())
	e.drainWord()
	if e.lastCommit == "" {
		return 0
	}
	return ResultNeedFlush
}

// FocusIn resets composition state for a newly focused text field.
func (e *InputEngine) FocusIn() InputResult {
	e.lastCommit = ""
	if e.state.IsEmpty() {
		return 0
	}
	e.state.Reset()
	return ResultNeedReset
}

// FocusOut flushes any in-flight preedit before the text field loses
// focus, so a partially composed syllable is not silently dropped.
func (e *InputEngine) FocusOut() InputResult {
	return e.Flush()
}

// PressKey advances the engine by one key event and reports what the
// frontend should do with it (spec.md §4.6).
func (e *InputEngine) PressKey(key keycode.Key) InputResult {
	e.lastCommit = ""
	wasEmpty := e.state.IsEmpty()

	if hk, ok := e.cfg.Hotkeys.Lookup(key); ok {
		return e.dispatchHotkey(hk, wasEmpty)
	}

	if !e.hangul {
		return 0
	}

	if key.Code == keycode.Backspace && !e.state.IsEmpty() {
		empty := automaton.Backspace(&e.state, e.cfg.Addons)
		result := ResultConsumed
		if empty {
			result |= ResultNeedReset
		} else {
			result |= ResultHasPreedit
		}
		return result
	}

	item, ok := e.cfg.Layout.Map(key)
	if !ok {
		e.commitSyllable(e.state.Flush())
		e.drainWord()
		var result InputResult
		if e.lastCommit != "" {
			result |= ResultNeedFlush
		}
		if !wasEmpty && e.state.IsEmpty() {
			result |= ResultNeedReset
		}
		return result
	}

	return e.applyLayoutItem(item, wasEmpty)
}

func (e *InputEngine) dispatchHotkey(hk hotkey.Hotkey, wasEmpty bool) InputResult {
	processed, langChanged := e.runHotkeyBehavior(hk.Behavior)

	var result InputResult
	switch hk.Result {
	case hotkey.Consume:
		result |= ResultConsumed
	case hotkey.ConsumeIfProcessed:
		if processed {
			result |= ResultConsumed
		}
	case hotkey.Bypass:
		// never consumed, but the behavior above still ran.
	}
	if langChanged {
		result |= ResultLanguageChanged
	}
	if e.lastCommit != "" {
		result |= ResultNeedFlush
	}
	if !wasEmpty && e.state.IsEmpty() {
		result |= ResultNeedReset
	}
	if !e.state.IsEmpty() {
		result |= ResultHasPreedit
	}
	return result
}

// runHotkeyBehavior executes behavior, returning whether it actually
// changed engine state and whether Hangul/English mode flipped.
func (e *InputEngine) runHotkeyBehavior(behavior hotkey.Behavior) (processed, langChanged bool) {
	switch behavior {
	case hotkey.ToggleHangul:
		e.hangul = !e.hangul
		if !e.hangul {
			e.commitSyllable(e.state.Flush())
			e.drainWord()
		}
		return true, true

	case hotkey.ToHangul:
		if e.hangul {
			return false, false
		}
		e.hangul = true
		return true, true

	case hotkey.ToEnglish:
		if !e.hangul {
			return false, false
		}
		e.hangul = false
		e.commitSyllable(e.state.Flush())
		e.drainWord()
		return true, true

	case hotkey.Commit:
		e.commitSyllable(e.state.Flush())
		e.drainWord()
		if e.lastCommit == "" {
			return false, false
		}
		return true, false

	case hotkey.Emoji, hotkey.Hanja:
		// Opening an emoji/hanja picker is a frontend responsibility
		// (spec.md Non-goals); the engine only reports that it has
		// nothing of its own to do, leaving ConsumeIfProcessed hotkeys
		// unconsumed so the frontend's own picker can see the key.
		return false, false

	default:
		return false, false
	}
}

// applyLayoutItem advances composition for a key that mapped to a
// layout entry (spec.md §4.3, §4.4).
func (e *InputEngine) applyLayoutItem(item layout.LayoutItem, wasEmpty bool) InputResult {
	var result InputResult

	switch item.Kind {
	case layout.KindLiteral:
		if wasEmpty && e.wordBuffer == "" {
			// No preedit or buffered word to order ahead of this key: a
			// literal is not a jamo, so with nothing pending it bypasses
			// entirely and the focused widget types it on its own (spec.md
			// §8 invariant: a non-jamo, non-hotkey key with an empty
			// preedit is never consumed).
			return 0
		}
		e.commitSyllable(e.state.Flush())
		e.drainWord()
		e.lastCommit += string(item.Literal)

	case layout.KindChoice:
		if e.state.HasChoseong() && e.state.HasJungseong() && !e.state.HasJongseong() &&
			item.Second.Pos == jamo.PosJongseong {
			e.state.SetJongseongDirect(item.Second.Jong)
		} else {
			e.commitSyllable(e.applyGlyph(item.First).Committed)
		}

	default: // layout.KindJamo
		e.commitSyllable(e.applyGlyph(item.Jamo).Committed)
	}

	result |= ResultConsumed
	if e.lastCommit != "" {
		result |= ResultNeedFlush
	}
	if !wasEmpty && e.state.IsEmpty() {
		result |= ResultNeedReset
	}
	if !e.state.IsEmpty() {
		result |= ResultHasPreedit
	}
	return result
}

// applyGlyph routes a single jamo value to the matching automaton
// transition based on its position.
func (e *InputEngine) applyGlyph(g jamo.Glyph) automaton.Result {
	switch g.Pos {
	case jamo.PosChoseong:
		return automaton.ApplyChoseong(&e.state, g.Cho, e.cfg.Addons)
	case jamo.PosJungseong:
		return automaton.ApplyJungseong(&e.state, g.Jung, e.cfg.Addons)
	default:
		e.state.SetJongseongDirect(g.Jong)
		return automaton.Result{}
	}
}
