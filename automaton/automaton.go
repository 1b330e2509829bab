// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package automaton is the composition engine's heart: a small state
// machine that accumulates jamo into a Hangul syllable, emits commits
// when the syllable closes or a non-jamo key arrives, and implements the
// addons that change ordering/compose semantics (spec.md §4.4).
//
// The machine itself performs no I/O and never fails: every transition
// either advances PreeditState or returns a finalized commit string,
// matching spec.md §7 ("the core has no fallible operations").
package automaton

import "github.com/gokime/kime/jamo"

// Addon is an independent, layout-scoped behavior flag (spec.md §4.4).
// Kept as a bitset, the same way the Rust source's enumset-backed Addon
// is kept (spec.md §9: "implementation is trivial and matches the
// design intent").
type Addon uint16

const (
	ComposeChoseongSsang Addon = 1 << iota
	ComposeJungseongSsang
	ComposeJongseongSsang
	DecomposeChoseongSsang
	DecomposeJungseongSsang
	DecomposeJongseongSsang
	FlexibleComposeOrder
	TreatJongseongAsChoseong
)

// Has reports whether every bit in mask is set.
func (a Addon) Has(mask Addon) bool { return a&mask == mask }

// PreeditState is the syllable under construction (spec.md §3). The zero
// value is the automaton's Empty state.
type PreeditState struct {
	hasCho, hasJung, hasJong bool
	cho                      jamo.Choseong
	jung                     jamo.Jungseong
	jong                     jamo.Jongseong

	// composedPos remembers which single position (if any) most recently
	// became a compound jamo via ComposeWith, so Backspace can decompose
	// it one step rather than clearing it outright (spec.md §4.4 rule 3:
	// "intermediate 'compound' pseudo-states that remember the last
	// compose for one-step undo").
	composedPos    jamo.Position
	hasComposedPos bool
}

// IsEmpty reports the automaton's Empty state.
func (s *PreeditState) IsEmpty() bool {
	return !s.hasCho && !s.hasJung && !s.hasJong
}

// HasChoseong, HasJungseong, and HasJongseong expose which slots are
// filled, used by frontends (and tests) that need more than the rendered
// string.
func (s *PreeditState) HasChoseong() bool  { return s.hasCho }
func (s *PreeditState) HasJungseong() bool { return s.hasJung }
func (s *PreeditState) HasJongseong() bool { return s.hasJong }

// Rune renders the state as either a precomposed Hangul syllable (when
// both choseong and jungseong are present) or the lone filled jamo,
// matching the invariant in spec.md §3.
func (s *PreeditState) Rune() rune {
	switch {
	case s.hasCho && s.hasJung:
		jong := jamo.JongNone
		if s.hasJong {
			jong = s.jong
		}
		return jamo.ComposeSyllable(s.cho, s.jung, jong)
	case s.hasCho:
		return s.cho.Rune()
	case s.hasJung:
		return s.jung.Rune()
	default:
		return 0
	}
}

// String renders the state per Rune, as an empty string when Empty.
func (s *PreeditState) String() string {
	if r := s.Rune(); r != 0 {
		return string(r)
	}
	return ""
}

// Reset drops the in-flight syllable without producing a commit.
func (s *PreeditState) Reset() { *s = PreeditState{} }

// Flush finalizes any in-flight syllable into a commit string and resets
// the state, matching InputEngine.flush (spec.md §4.6).
func (s *PreeditState) Flush() string {
	committed := s.String()
	s.Reset()
	return committed
}

func (s *PreeditState) markComposed(pos jamo.Position) {
	s.composedPos, s.hasComposedPos = pos, true
}

func (s *PreeditState) clearComposedMarkFor(pos jamo.Position) {
	if s.hasComposedPos && s.composedPos == pos {
		s.hasComposedPos = false
	}
}

// SetJongseongDirect fills the jongseong slot with t without going
// through AsJongseong translation. Used by three-set (세벌식) layouts
// whose choice entries name an explicit jongseong value that may differ
// from the matching choseong consonant, rather than relying on the
// automaton to derive one from a choseong keystroke (spec.md §3: "a pair
// (first_choice, second_choice)... first_choice preferred by state").
// Only valid to call when a syllable is open awaiting a final consonant;
// it is a no-op otherwise.
func (s *PreeditState) SetJongseongDirect(t jamo.Jongseong) {
	if s.hasCho && s.hasJung && !s.hasJong {
		s.jong, s.hasJong = t, true
	}
}

func (s *PreeditState) flushAndStartChoseong(c jamo.Choseong) Result {
	committed := s.Flush()
	s.cho, s.hasCho = c, true
	return Result{Committed: committed}
}

// Result communicates what a single automaton step produced. Committed
// holds zero, one, or two finalized characters worth of text (spec.md §9:
// "the automaton never needs to emit more than two commits per key").
type Result struct {
	Committed string
}

// ApplyChoseong advances the state machine on an incoming initial
// consonant, implementing spec.md §4.4 rule 1 plus the
// FlexibleComposeOrder addon's vowel-then-consonant rewrite.
func ApplyChoseong(s *PreeditState, c jamo.Choseong, addons Addon) Result {
	switch {
	case s.IsEmpty():
		s.cho, s.hasCho = c, true
		return Result{}

	case !s.hasCho && s.hasJung && !s.hasJong && addons.Has(FlexibleComposeOrder):
		// ㅏ + ㄱ = 가 (spec.md §4.4, FlexibleComposeOrder).
		v := s.jung
		s.Reset()
		s.cho, s.hasCho = c, true
		s.jung, s.hasJung = v, true
		return Result{}

	case s.hasCho && !s.hasJung:
		if addons.Has(ComposeChoseongSsang) {
			if composed, ok := s.cho.ComposeWith(c); ok {
				s.cho = composed
				s.markComposed(jamo.PosChoseong)
				return Result{}
			}
		}
		return s.flushAndStartChoseong(c)

	case s.hasCho && s.hasJung && !s.hasJong:
		if jong, ok := c.AsJongseong(); ok {
			s.jong, s.hasJong = jong, true
			return Result{}
		}
		return s.flushAndStartChoseong(c)

	case s.hasJong:
		if addons.Has(ComposeJongseongSsang) {
			if asJong, ok := c.AsJongseong(); ok {
				if composed, ok2 := s.jong.ComposeWith(asJong); ok2 {
					s.jong = composed
					s.markComposed(jamo.PosJongseong)
					return Result{}
				}
			}
		}
		return s.flushAndStartChoseong(c)

	default:
		return s.flushAndStartChoseong(c)
	}
}

// ApplyJungseong advances the state machine on an incoming medial vowel,
// implementing spec.md §4.4 rule 2, including the jongseong carry-over
// case (rule 2c) gated by TreatJongseongAsChoseong.
func ApplyJungseong(s *PreeditState, v jamo.Jungseong, addons Addon) Result {
	switch {
	case s.IsEmpty(), s.hasCho && !s.hasJung:
		s.jung, s.hasJung = v, true
		return Result{}

	case s.hasJung && !s.hasJong:
		if addons.Has(ComposeJungseongSsang) {
			if composed, ok := s.jung.ComposeWith(v); ok {
				s.jung = composed
				s.markComposed(jamo.PosJungseong)
				return Result{}
			}
		}
		committed := s.Flush()
		s.jung, s.hasJung = v, true
		return Result{Committed: committed}

	case s.hasJong:
		return carryOver(s, v, addons)

	default:
		committed := s.Flush()
		s.jung, s.hasJung = v, true
		return Result{Committed: committed}
	}
}

// carryOver implements spec.md §4.4 rule 2c: a jongseong cluster splits
// into a kept half (remains jongseong of the committed syllable) and a
// moved half (becomes the choseong of the new syllable); a simple
// (non-cluster) jongseong moves in its entirety.
func carryOver(s *PreeditState, v jamo.Jungseong, addons Addon) Result {
	if !addons.Has(TreatJongseongAsChoseong) {
		committed := s.Flush()
		s.jung, s.hasJung = v, true
		return Result{Committed: committed}
	}

	kept := jamo.JongNone
	moved := s.jong
	if first, second, ok := s.jong.Decompose(); ok {
		kept, moved = first, second
	}

	committed := string(jamo.ComposeSyllable(s.cho, s.jung, kept))
	choseong, _ := moved.AsChoseong()

	s.Reset()
	s.cho, s.hasCho = choseong, true
	s.jung, s.hasJung = v, true
	return Result{Committed: committed}
}

// Backspace removes the top-most filled slot (spec.md §4.4 rule 3). A
// compound jamo formed by ComposeWith is instead reduced to its first
// component when the matching Decompose*Ssang addon is set; without that
// addon the compound slot is cleared outright. It returns true when the
// state is Empty afterwards, signalling the frontend should treat the key
// as CONSUMED|NEED_RESET with an empty preedit.
func Backspace(s *PreeditState, addons Addon) bool {
	switch {
	case s.hasJong:
		if s.hasComposedPos && s.composedPos == jamo.PosJongseong && addons.Has(DecomposeJongseongSsang) {
			if first, _, ok := s.jong.Decompose(); ok {
				s.jong = first
				s.clearComposedMarkFor(jamo.PosJongseong)
				return s.IsEmpty()
			}
		}
		s.hasJong = false
		s.clearComposedMarkFor(jamo.PosJongseong)

	case s.hasJung:
		if s.hasComposedPos && s.composedPos == jamo.PosJungseong && addons.Has(DecomposeJungseongSsang) {
			if first, _, ok := s.jung.Decompose(); ok {
				s.jung = first
				s.clearComposedMarkFor(jamo.PosJungseong)
				return s.IsEmpty()
			}
		}
		s.hasJung = false
		s.clearComposedMarkFor(jamo.PosJungseong)

	case s.hasCho:
		if s.hasComposedPos && s.composedPos == jamo.PosChoseong && addons.Has(DecomposeChoseongSsang) {
			if first, _, ok := s.cho.Decompose(); ok {
				s.cho = first
				s.clearComposedMarkFor(jamo.PosChoseong)
				return s.IsEmpty()
			}
		}
		s.hasCho = false
		s.clearComposedMarkFor(jamo.PosChoseong)
	}
	return s.IsEmpty()
}
