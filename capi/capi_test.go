// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package capi

import (
	"testing"

	"github.com/gokime/kime"
)

func TestFlattenResultBypass(t *testing.T) {
	ty, c1, c2 := flattenResult(0, 0, "")
	if ty != resultBypass || c1 != 0 || c2 != 0 {
		t.Fatalf("got (%d,%d,%d), want bypass", ty, c1, c2)
	}
}

func TestFlattenResultPreeditOnly(t *testing.T) {
	r := kime.ResultConsumed | kime.ResultHasPreedit
	ty, c1, c2 := flattenResult(r, 'ㄱ', "")
	if ty != resultPreedit || c1 != uint32('ㄱ') || c2 != 0 {
		t.Fatalf("got (%d,%d,%d), want preedit ㄱ", ty, c1, c2)
	}
}

func TestFlattenResultCommitOnly(t *testing.T) {
	r := kime.ResultConsumed | kime.ResultNeedFlush
	ty, c1, c2 := flattenResult(r, 0, "가")
	if ty != resultCommit || c1 != uint32('가') || c2 != 0 {
		t.Fatalf("got (%d,%d,%d), want commit 가", ty, c1, c2)
	}
}

func TestFlattenResultCommitBypass(t *testing.T) {
	r := kime.ResultNeedFlush
	ty, c1, c2 := flattenResult(r, 0, "가")
	if ty != resultCommitBypass || c1 != uint32('가') {
		t.Fatalf("got (%d,%d,%d), want commit-bypass 가", ty, c1, c2)
	}
}

func TestFlattenResultCommitPreedit(t *testing.T) {
	r := kime.ResultConsumed | kime.ResultNeedFlush | kime.ResultHasPreedit
	ty, c1, c2 := flattenResult(r, '아', "강")
	if ty != resultCommitPreedit || c1 != uint32('강') || c2 != uint32('아') {
		t.Fatalf("got (%d,%d,%d), want commit-preedit 강/아", ty, c1, c2)
	}
}

func TestFlattenResultCommitCommit(t *testing.T) {
	r := kime.ResultConsumed | kime.ResultNeedFlush
	ty, c1, c2 := flattenResult(r, 0, "가!")
	if ty != resultCommitCommit || c1 != uint32('가') || c2 != uint32('!') {
		t.Fatalf("got (%d,%d,%d), want commit-commit 가/!", ty, c1, c2)
	}
}

func TestFlattenResultToggleHangul(t *testing.T) {
	r := kime.ResultConsumed | kime.ResultLanguageChanged
	ty, _, _ := flattenResult(r, 0, "")
	if ty != resultToggleHangul {
		t.Fatalf("got %d, want toggle-hangul", ty)
	}
}

func TestFlattenResultClearPreedit(t *testing.T) {
	r := kime.ResultNeedReset
	ty, _, _ := flattenResult(r, 0, "")
	if ty != resultClearPreedit {
		t.Fatalf("got %d, want clear-preedit", ty)
	}
}
