// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kime

import (
	"testing"

	"github.com/gokime/kime/config"
	"github.com/gokime/kime/keycode"
)

func newTestEngine(t *testing.T, mutate func(*config.RawConfig)) *InputEngine {
	t.Helper()
	raw := config.DefaultRawConfig()
	if mutate != nil {
		mutate(&raw)
	}
	cfg, err := config.Resolve(raw)
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}
	return New(cfg)
}

// press feeds each code in sequence, with no modifiers, through the
// engine's configured layout.
func press(t *testing.T, e *InputEngine, codes ...keycode.KeyCode) []InputResult {
	t.Helper()
	results := make([]InputResult, len(codes))
	for i, code := range codes {
		results[i] = e.PressKey(keycode.Normal(code))
	}
	return results
}

// TestScenarioTable reproduces the composition traces used to validate
// the automaton against 두벌식 dubeolsik typing, each row grounded on the
// original engine's dubeolsik.rs/sebeolsik_sin1995.rs integration tests.
func TestScenarioTable(t *testing.T) {
	t.Run("simple syllable 가", func(t *testing.T) {
		e := newTestEngine(t, nil)
		press(t, e, keycode.R, keycode.K)
		if got := e.PreeditStr(); got != "가" {
			t.Fatalf("got %q, want 가", got)
		}
	})

	t.Run("jongseong carry-over 안녕", func(t *testing.T) {
		e := newTestEngine(t, func(raw *config.RawConfig) { raw.WordCommit = true })
		// D=cho NG, K=jung A, S=cho N, S=cho N (jongseong, no compose ->
		// flushes 안), U=jung YEO, D=cho NG (jongseong) -> preedit 녕.
		press(t, e, keycode.D, keycode.K, keycode.S, keycode.S, keycode.U, keycode.D)
		if got := e.PreeditStr(); got != "녕" {
			t.Fatalf("got %q, want 녕", got)
		}
		e.Flush()
		if got := e.CommitStr(); got != "안녕" {
			t.Fatalf("got %q, want 안녕", got)
		}
	})

	t.Run("jongseong syllable 강 then new syllable ㄷ", func(t *testing.T) {
		e := newTestEngine(t, nil)
		// R=cho G, K=jung A, D=cho NG (jongseong ㅇ) -> 강, then E=cho D
		// cannot compose with jongseong NG and is not its own valid
		// jongseong partner, so it flushes 강 and starts a lone ㄷ.
		press(t, e, keycode.R, keycode.K, keycode.D)
		if got := e.PreeditStr(); got != "강" {
			t.Fatalf("got %q, want 강", got)
		}
		e.PressKey(keycode.Normal(keycode.E))
		if got := e.CommitStr(); got != "강" {
			t.Fatalf("got %q, want commit 강", got)
		}
	})

	t.Run("diphthong chain 오 외 욍 then new syllable 아", func(t *testing.T) {
		e := newTestEngine(t, nil)
		e.PressKey(keycode.Normal(keycode.D)) // cho NG
		e.PressKey(keycode.Normal(keycode.H)) // jung O -> 오
		if got := e.PreeditStr(); got != "오" {
			t.Fatalf("got %q, want 오", got)
		}
		e.PressKey(keycode.Normal(keycode.L)) // jung I -> compose O+I=OE -> 외
		if got := e.PreeditStr(); got != "외" {
			t.Fatalf("got %q, want 외", got)
		}
		e.PressKey(keycode.Normal(keycode.D)) // jongseong NG -> 욍
		if got := e.PreeditStr(); got != "욍" {
			t.Fatalf("got %q, want 욍", got)
		}
		// a second NG cannot compose onto the existing NG jongseong, so
		// it flushes 욍 and starts a new lone choseong NG.
		result := e.PressKey(keycode.Normal(keycode.D))
		if got := e.CommitStr(); got != "욍" {
			t.Fatalf("got %q, want commit 욍", got)
		}
		if !result.Has(ResultNeedFlush) {
			t.Fatalf("expected NeedFlush, got %v", result)
		}
		e.PressKey(keycode.Normal(keycode.K)) // jung A joins the fresh cho NG -> 아
		if got := e.PreeditStr(); got != "아" {
			t.Fatalf("got %q, want 아", got)
		}
	})

	t.Run("shift geminate and literal commit both in one key", func(t *testing.T) {
		e := newTestEngine(t, nil)
		e.PressKey(keycode.WithShift(keycode.R)) // Shift+R -> cho GG
		if got := e.PreeditStr(); got != "ㄲ" {
			t.Fatalf("got %q, want ㄲ", got)
		}
		result := e.PressKey(keycode.WithShift(keycode.Key1)) // Shift+1 -> literal '!'
		if !result.Has(ResultNeedFlush) {
			t.Fatalf("expected NeedFlush, got %v", result)
		}
		if got := e.CommitStr(); got != "ㄲ!" {
			t.Fatalf("got %q, want ㄲ!", got)
		}
	})
}

func TestSebeolsikSin1995Scenario(t *testing.T) {
	e := newTestEngine(t, func(raw *config.RawConfig) {
		raw.DefaultLayout = "sebeolsik-sin1995"
	})
	// J=cho NG, F=jung A -> 아
	press(t, e, keycode.J, keycode.F)
	if got := e.PreeditStr(); got != "아" {
		t.Fatalf("got %q, want 아", got)
	}
}

func TestFlexibleComposeOrderScenario(t *testing.T) {
	e := newTestEngine(t, func(raw *config.RawConfig) {
		raw.LayoutAddons["dubeolsik"] = append(raw.LayoutAddons["dubeolsik"], "FlexibleComposeOrder")
	})
	// K=jung A first, then R=cho G -> still composes to 가.
	press(t, e, keycode.K, keycode.R)
	if got := e.PreeditStr(); got != "가" {
		t.Fatalf("got %q, want 가", got)
	}
}

func TestBackspaceClearsPreedit(t *testing.T) {
	e := newTestEngine(t, nil)
	press(t, e, keycode.R, keycode.K)
	result := e.PressKey(keycode.Normal(keycode.Backspace))
	if !result.Has(ResultHasPreedit) {
		t.Fatalf("expected HasPreedit after one backspace, got %v", result)
	}
	if got := e.PreeditStr(); got != "ㄱ" {
		t.Fatalf("got %q, want ㄱ", got)
	}
	result = e.PressKey(keycode.Normal(keycode.Backspace))
	if !result.Has(ResultNeedReset) {
		t.Fatalf("expected NeedReset once empty, got %v", result)
	}
	if !e.state.IsEmpty() {
		t.Fatalf("expected empty state")
	}
}

func TestToggleHangulHotkeyFlushesAndBypasses(t *testing.T) {
	e := newTestEngine(t, nil)
	press(t, e, keycode.R, keycode.K)
	result := e.PressKey(keycode.Normal(keycode.Hangul))
	if !result.Has(ResultConsumed) || !result.Has(ResultLanguageChanged) || !result.Has(ResultNeedFlush) {
		t.Fatalf("got %v", result)
	}
	if got := e.CommitStr(); got != "가" {
		t.Fatalf("got %q, want 가", got)
	}
	if e.IsHangul() {
		t.Fatalf("expected English mode after toggle")
	}
	// subsequent keys bypass entirely while in English mode.
	result = e.PressKey(keycode.Normal(keycode.R))
	if result != 0 {
		t.Fatalf("expected bypass in English mode, got %v", result)
	}
}

func TestPreeditWindowUpdateAndRemove(t *testing.T) {
	e := newTestEngine(t, nil)
	e.UpdatePreeditWindow(10, 20, '강')
	win, ok := e.PreeditWindowState()
	if !ok {
		t.Fatalf("expected a pending preedit window request")
	}
	if win.X != 10 || win.Y != 20 || win.Ch != '강' {
		t.Fatalf("got %+v, want {10 20 강}", win)
	}
	e.RemovePreeditWindow()
	if _, ok := e.PreeditWindowState(); ok {
		t.Fatalf("expected no pending preedit window request after removal")
	}
}

func TestFocusOutFlushesPendingSyllable(t *testing.T) {
	e := newTestEngine(t, nil)
	press(t, e, keycode.R, keycode.K)
	result := e.FocusOut()
	if !result.Has(ResultNeedFlush) {
		t.Fatalf("expected NeedFlush, got %v", result)
	}
	if got := e.CommitStr(); got != "가" {
		t.Fatalf("got %q, want 가", got)
	}
}
