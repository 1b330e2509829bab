// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package capi is the cgo export surface that lets a C caller (an XIM
// daemon, a GTK/Qt input method module) drive an InputEngine without
// linking against Go directly. It mirrors the original engine's capi/
// cffi crates function-for-function, but keeps each *InputEngine and
// *Config behind a runtime/cgo.Handle instead of handing out a raw Go
// pointer: cgo's pointer-passing rules forbid C code from holding onto
// a Go pointer across calls, so the handle is the opaque "pointer" C
// sees (spec.md §6, "the core has no fallible operations" — this
// package is the one place failure is even representable, via the
// existing null-handle idiom the original C ABI already uses).
package capi

/*
#include <stdint.h>

typedef struct kime_input_result {
	uint32_t ty;
	uint32_t char1;
	uint32_t char2;
} kime_input_result;
*/
import "C"

import (
	"runtime/cgo"

	"github.com/gokime/kime"
	"github.com/gokime/kime/config"
	"github.com/gokime/kime/keycode"
)

// resultType mirrors the original cffi.rs InputResultType enum. The
// engine's InputResult is an orthogonal bitset (see package kime's
// input_result.go); flattenResult below maps it back down to this enum
// for the one consumer, C, that actually wants the flattened shape.
const (
	resultBypass        = 0
	resultToggleHangul  = 1
	resultClearPreedit  = 2
	resultPreedit       = 3
	resultCommit        = 4
	resultCommitBypass  = 5
	resultCommitPreedit = 6
	resultCommitCommit  = 7
)

// flattenResult reduces kime.InputResult plus the engine's current
// preedit/commit strings to the original ABI's eight-case enum and up
// to two UCS-4 output characters.
//
// word-commit mode can in principle produce a commit string longer
// than two runes (an entire buffered word); when that happens only the
// first two runes are surfaced here and the rest is dropped, a real
// limitation of the fixed two-char ABI shape that the XIM/GTK-IM
// frontends (package capi's consumers) work around by preferring
// UTF-8 commit strings over this entry point when available. No such
// UTF-8 entry point exists in this ABI, matching the original.
func flattenResult(r kime.InputResult, preedit rune, commit string) (ty uint32, char1, char2 uint32) {
	commitRunes := []rune(commit)
	var c1, c2 rune
	if len(commitRunes) > 0 {
		c1 = commitRunes[0]
	}
	if len(commitRunes) > 1 {
		c2 = commitRunes[1]
	}

	hasCommit := c1 != 0
	hasSecondCommit := c2 != 0
	hasPreedit := preedit != 0

	switch {
	case hasCommit && hasSecondCommit:
		return resultCommitCommit, uint32(c1), uint32(c2)
	case hasCommit && hasPreedit:
		return resultCommitPreedit, uint32(c1), uint32(preedit)
	case hasCommit:
		if r.Has(kime.ResultConsumed) {
			return resultCommit, uint32(c1), 0
		}
		return resultCommitBypass, uint32(c1), 0
	case r.Has(kime.ResultLanguageChanged):
		return resultToggleHangul, 0, 0
	case r.Has(kime.ResultNeedReset) && !hasPreedit:
		return resultClearPreedit, 0, 0
	case hasPreedit:
		return resultPreedit, uint32(preedit), 0
	case r.Has(kime.ResultConsumed):
		return resultPreedit, 0, 0
	default:
		return resultBypass, 0, 0
	}
}

// preeditRune returns the single rune PreeditStr renders, or 0 when empty.
func preeditRune(e *kime.InputEngine) rune {
	s := e.PreeditStr()
	if s == "" {
		return 0
	}
	r := []rune(s)
	return r[0]
}

//export kime_engine_new
func kime_engine_new() C.uintptr_t {
	e := kime.New(config.Load())
	return C.uintptr_t(cgo.NewHandle(e))
}

//export kime_engine_delete
func kime_engine_delete(handle C.uintptr_t) {
	cgo.Handle(handle).Delete()
}

//export kime_engine_is_hangul_enabled
func kime_engine_is_hangul_enabled(handle C.uintptr_t) C.uint32_t {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	if e.IsHangul() {
		return 1
	}
	return 0
}

//export kime_engine_focus_in
func kime_engine_focus_in(handle C.uintptr_t) {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	e.FocusIn()
}

//export kime_engine_focus_out
func kime_engine_focus_out(handle C.uintptr_t) {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	e.FocusOut()
}

// kime_engine_update_preedit records where an off-the-spot frontend (one
// that cannot draw preedit text inline, e.g. XIM's preedit callback)
// wants a floating preedit window shown, and which character it should
// display.
//
//export kime_engine_update_preedit
func kime_engine_update_preedit(handle C.uintptr_t, x, y, ch C.uint32_t) {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	e.UpdatePreeditWindow(uint32(x), uint32(y), rune(ch))
}

// kime_engine_remove_preedit clears any pending floating preedit window
// request.
//
//export kime_engine_remove_preedit
func kime_engine_remove_preedit(handle C.uintptr_t) {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	e.RemovePreeditWindow()
}

//export kime_engine_preedit_char
func kime_engine_preedit_char(handle C.uintptr_t) C.uint32_t {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	return C.uint32_t(preeditRune(e))
}

//export kime_engine_reset
func kime_engine_reset(handle C.uintptr_t) C.uint32_t {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	e.Reset()
	return 0
}

// kime_engine_press_key advances the engine by one hardware key event
// and returns the flattened InputResult the original ABI exposes.
//
//export kime_engine_press_key
func kime_engine_press_key(handle C.uintptr_t, cfgHandle C.uintptr_t, hardwareCode C.uint16_t, modState C.uint32_t) C.kime_input_result {
	e := cgo.Handle(handle).Value().(*kime.InputEngine)
	// cfgHandle is accepted for ABI parity with the original
	// kime_engine_press_key(engine, config, code, state) signature, but
	// this engine's InputEngine already owns its *config.Config from
	// kime_engine_new; the handle is only type-asserted to catch a
	// caller passing a stale or wrong-kind handle.
	_ = cgo.Handle(cfgHandle).Value().(*config.Config)

	code, ok := keycode.FromHardwareCode(uint16(hardwareCode))
	if !ok {
		return C.kime_input_result{ty: resultBypass}
	}
	key := keycode.New(code, keycode.ModifierState(uint8(modState)))

	result := e.PressKey(key)
	ty, c1, c2 := flattenResult(result, preeditRune(e), e.CommitStr())
	return C.kime_input_result{ty: C.uint32_t(ty), char1: C.uint32_t(c1), char2: C.uint32_t(c2)}
}

//export kime_config_load
func kime_config_load() C.uintptr_t {
	cfg := config.Load()
	return C.uintptr_t(cgo.NewHandle(cfg))
}

//export kime_config_delete
func kime_config_delete(handle C.uintptr_t) {
	cgo.Handle(handle).Delete()
}

// kime_config_xim_preedit_font writes a pointer to a newly C-allocated,
// NUL-terminated UTF-8 copy of the config's XIM preedit font name into
// *name and its byte length (without the NUL) into *length. The copy does
// not depend on the Config behind handle, and this package never frees
// it. An empty font name yields a nil *name and zero length and size.
//
//export kime_config_xim_preedit_font
func kime_config_xim_preedit_font(handle C.uintptr_t, name **C.char, length *C.size_t, fontSize *C.double) {
	cfg := cgo.Handle(handle).Value().(*config.Config)
	font := cfg.XimPreeditFont
	if font == "" {
		*name = nil
		*length = 0
		*fontSize = C.double(0)
		return
	}
	*name = C.CString(font)
	*length = C.size_t(len(font))
	*fontSize = C.double(defaultPreeditFontSize)
}

// defaultPreeditFontSize matches the original config's fallback point
// size for the XIM preedit overlay when no explicit size is configured
// (the current Config type carries only a font name, spec.md Non-goals
// excluding a full font-size knob from this port).
const defaultPreeditFontSize = 15.0
