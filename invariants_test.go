// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kime

import (
	"testing"

	"github.com/gokime/kime/keycode"
)

// corpusKey is one step in a fixed key corpus, paired with a label so
// invariant failures name the actual key instead of a bare index.
type corpusKey struct {
	key   keycode.Key
	label string
}

func ck(label string, key keycode.Key) corpusKey { return corpusKey{key: key, label: label} }

// invariantCorpus is the fixed set of 두벌식 key sequences the §8
// invariants below are checked against (the teacher pack carries no
// property-testing library, so these stay explicit loops over a fixed
// corpus rather than generated cases): plain composition, jongseong
// carry-over, a diphthong chain, backspace, a literal that collides with
// a pending syllable, a bare literal, an unmapped key both bare and
// after a pending syllable, and the ToggleHangul hotkey.
var invariantCorpus = [][]corpusKey{
	{ck("R", keycode.Normal(keycode.R)), ck("K", keycode.Normal(keycode.K))},
	{
		ck("D", keycode.Normal(keycode.D)), ck("K", keycode.Normal(keycode.K)),
		ck("S", keycode.Normal(keycode.S)), ck("S", keycode.Normal(keycode.S)),
		ck("U", keycode.Normal(keycode.U)), ck("D", keycode.Normal(keycode.D)),
	},
	{
		ck("R", keycode.Normal(keycode.R)), ck("K", keycode.Normal(keycode.K)),
		ck("D", keycode.Normal(keycode.D)), ck("E", keycode.Normal(keycode.E)),
	},
	{
		ck("D", keycode.Normal(keycode.D)), ck("H", keycode.Normal(keycode.H)),
		ck("L", keycode.Normal(keycode.L)), ck("D", keycode.Normal(keycode.D)),
		ck("D", keycode.Normal(keycode.D)), ck("K", keycode.Normal(keycode.K)),
	},
	{ck("R", keycode.Normal(keycode.R)), ck("Backspace", keycode.Normal(keycode.Backspace))},
	{
		ck("Shift+R", keycode.WithShift(keycode.R)),
		ck("Shift+1", keycode.WithShift(keycode.Key1)),
	},
	{ck("1", keycode.Normal(keycode.Key1))},
	{ck("F1", keycode.Normal(keycode.F1))},
	{ck("R", keycode.Normal(keycode.R)), ck("F1", keycode.Normal(keycode.F1))},
	{
		ck("R", keycode.Normal(keycode.R)), ck("Hangul", keycode.Normal(keycode.Hangul)),
		ck("R", keycode.Normal(keycode.R)),
	},
}

// TestInvariantPreeditAtMostOneSyllable checks §8 invariant 1: after any
// prefix of any corpus sequence, PreeditStr renders at most one Hangul
// syllable or standalone jamo.
func TestInvariantPreeditAtMostOneSyllable(t *testing.T) {
	for i, seq := range invariantCorpus {
		e := newTestEngine(t, nil)
		for j, step := range seq {
			e.PressKey(step.key)
			if n := len([]rune(e.PreeditStr())); n > 1 {
				t.Fatalf("corpus[%d] step %d (%s): preedit %q has %d runes, want <=1",
					i, j, step.label, e.PreeditStr(), n)
			}
		}
	}
}

// TestInvariantBypassedKeyLeavesStateUnchanged checks a corollary of §8
// invariant 2 (no character is ever lost or duplicated): a key that is
// neither consumed nor triggers a flush is a pure no-op — it cannot have
// silently produced a commit or altered the in-flight preedit. A key can
// still be unconsumed and flush at once (an unmapped key arriving with a
// pending syllable: the flushed text is inserted, then the raw,
// unconsumed key event falls through on its own), so that combination is
// deliberately excluded here rather than treated as a no-op.
func TestInvariantBypassedKeyLeavesStateUnchanged(t *testing.T) {
	for i, seq := range invariantCorpus {
		e := newTestEngine(t, nil)
		for j, step := range seq {
			before := e.PreeditStr()
			result := e.PressKey(step.key)
			if result.Has(ResultConsumed) || result.Has(ResultNeedFlush) {
				continue
			}
			if e.CommitStr() != "" {
				t.Fatalf("corpus[%d] step %d (%s): no-op key produced a commit %q",
					i, j, step.label, e.CommitStr())
			}
			if e.PreeditStr() != before {
				t.Fatalf("corpus[%d] step %d (%s): no-op key changed preedit from %q to %q",
					i, j, step.label, before, e.PreeditStr())
			}
		}
	}
}

// TestInvariantBackspaceIsLeftInverseOfComposingKeystroke checks §8
// invariant 3: when a keystroke is consumed, doesn't flush anything (so
// it stayed within the same syllable), and actually changed the preedit,
// a Backspace immediately afterward restores the preedit to what it was
// right before that keystroke.
func TestInvariantBackspaceIsLeftInverseOfComposingKeystroke(t *testing.T) {
	for i, seq := range invariantCorpus {
		for j, step := range seq {
			if step.key.Code == keycode.Backspace {
				continue
			}
			e := newTestEngine(t, nil)
			for _, prior := range seq[:j] {
				e.PressKey(prior.key)
			}
			before := e.PreeditStr()
			result := e.PressKey(step.key)
			if !result.Has(ResultConsumed) || result.Has(ResultNeedFlush) {
				continue // hotkey, bypass, or a key that closed the syllable
			}
			after := e.PreeditStr()
			if after == before {
				continue // a no-op keystroke, e.g. a jongseong that didn't attach
			}
			e.PressKey(keycode.Normal(keycode.Backspace))
			if got := e.PreeditStr(); got != before {
				t.Fatalf("corpus[%d] step %d (%s): backspace after a composing key left preedit %q, want %q",
					i, j, step.label, got, before)
			}
		}
	}
}

// TestInvariantFlushThenPreeditEmpty checks §8 invariant 4: Flush always
// leaves PreeditStr empty, whatever state the corpus sequence reached.
func TestInvariantFlushThenPreeditEmpty(t *testing.T) {
	for i, seq := range invariantCorpus {
		e := newTestEngine(t, nil)
		for _, step := range seq {
			e.PressKey(step.key)
		}
		e.Flush()
		if got := e.PreeditStr(); got != "" {
			t.Fatalf("corpus[%d]: preedit %q non-empty after Flush", i, got)
		}
	}
}

// TestInvariantEmptyPreeditNonJamoKeyNotConsumed checks §8 invariant 5:
// a non-jamo, non-hotkey key (a literal or an unmapped key) with no
// pending preedit is never consumed, so the focused widget handles it
// on its own without the engine's involvement.
func TestInvariantEmptyPreeditNonJamoKeyNotConsumed(t *testing.T) {
	nonJamoKeys := []corpusKey{
		ck("1", keycode.Normal(keycode.Key1)),
		ck("Shift+1", keycode.WithShift(keycode.Key1)),
		ck("Space", keycode.Normal(keycode.Space)),
		ck("F1", keycode.Normal(keycode.F1)),
	}
	for _, k := range nonJamoKeys {
		e := newTestEngine(t, nil)
		result := e.PressKey(k.key)
		if result.Has(ResultConsumed) {
			t.Fatalf("key %s: expected CONSUMED=false with empty preceding preedit, got %v", k.label, result)
		}
	}
}

// TestInvariantToggleHangulTwiceIsIdempotent checks the first of §8's
// "Additional properties": applying the ToggleHangul hotkey twice in a
// row (with nothing typed in between) returns IsHangul to its original
// value.
func TestInvariantToggleHangulTwiceIsIdempotent(t *testing.T) {
	for i, seq := range invariantCorpus {
		e := newTestEngine(t, nil)
		for _, step := range seq {
			e.PressKey(step.key)
		}
		before := e.IsHangul()
		e.PressKey(keycode.Normal(keycode.Hangul))
		e.PressKey(keycode.Normal(keycode.Hangul))
		if got := e.IsHangul(); got != before {
			t.Fatalf("corpus[%d]: IsHangul %v after two ToggleHangul presses, want %v (unchanged)", i, got, before)
		}
	}
}

// TestInvariantFocusOutMatchesFlush checks the third of §8's "Additional
// properties": FocusOut commits exactly what an explicit Flush would
// have produced from the same state.
func TestInvariantFocusOutMatchesFlush(t *testing.T) {
	for i, seq := range invariantCorpus {
		want := newTestEngine(t, nil)
		for _, step := range seq {
			want.PressKey(step.key)
		}
		want.Flush()
		wantCommit := want.CommitStr()

		got := newTestEngine(t, nil)
		for _, step := range seq {
			got.PressKey(step.key)
		}
		got.FocusOut()
		if gotCommit := got.CommitStr(); gotCommit != wantCommit {
			t.Fatalf("corpus[%d]: FocusOut commit %q, want %q (matching Flush)", i, gotCommit, wantCommit)
		}
	}
}
