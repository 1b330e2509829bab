// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package kime

// InputResult tells a frontend what happened as a result of one
// InputEngine call and what it should do next (spec.md §4.6, §6). It is
// the general, orthogonal-bitset form of the flattened InputResultType
// enum the C ABI exposes (see package capi): a single PressKey call can
// both consume the key and report a commit, something an exhaustive enum
// of named cases can't express without duplicating every combination.
type InputResult uint8

const (
	// ResultConsumed means the frontend must not forward the raw key
	// event to the focused widget.
	ResultConsumed InputResult = 1 << iota
	// ResultHasPreedit means PreeditStr() now holds a non-empty in-flight
	// syllable to display.
	ResultHasPreedit
	// ResultNeedReset means a previously shown preedit just became empty
	// and any on-screen overlay should be cleared.
	ResultNeedReset
	// ResultNeedFlush means CommitStr() holds text produced by this call
	// that the frontend must insert into the focused widget.
	ResultNeedFlush
	// ResultLanguageChanged means Hangul/English mode just toggled;
	// frontends that show a language indicator should refresh it.
	ResultLanguageChanged
)

// Has reports whether every bit in mask is set.
func (r InputResult) Has(mask InputResult) bool { return r&mask == mask }
