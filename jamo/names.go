// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package jamo

// choNames, jungNames, and jongNames give each jamo value a short
// ASCII identifier used by layout YAML files (see layout.LoadYAML),
// since YAML authors can't easily type combining Hangul jamo by hand.
var choNames = [choCount]string{
	"G", "GG", "N", "D", "DD", "R", "M", "B", "BB", "S",
	"SS", "NG", "J", "JJ", "CH", "K", "T", "P", "H",
}

var jungNames = [jungCount]string{
	"A", "AE", "YA", "YAE", "EO", "E", "YEO", "YE", "O", "WA",
	"WAE", "OE", "YO", "U", "WEO", "WE", "WI", "YU", "EU", "UI", "I",
}

var jongNames = [jongCount]string{
	"", "G", "GG", "GS", "N", "NJ", "NH", "D", "R", "RG",
	"RM", "RB", "RS", "RT", "RP", "RH", "M", "B", "BS", "S",
	"SS", "NG", "J", "CH", "K", "T", "P", "H",
}

func buildIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return idx
}

var (
	choIndex  = buildIndex(choNames[:])
	jungIndex = buildIndex(jungNames[:])
	jongIndex = buildIndex(jongNames[:])
)

// ChoseongByName looks up a Choseong by its YAML identifier.
func ChoseongByName(name string) (Choseong, bool) {
	i, ok := choIndex[name]
	return Choseong(i), ok
}

// JungseongByName looks up a Jungseong by its YAML identifier.
func JungseongByName(name string) (Jungseong, bool) {
	i, ok := jungIndex[name]
	return Jungseong(i), ok
}

// JongseongByName looks up a Jongseong by its YAML identifier. The empty
// string names JongNone.
func JongseongByName(name string) (Jongseong, bool) {
	i, ok := jongIndex[name]
	return Jongseong(i), ok
}

// Name returns the YAML identifier for a jamo value.
func (c Choseong) Name() string  { return choNames[c] }
func (v Jungseong) Name() string { return jungNames[v] }
func (t Jongseong) Name() string { return jongNames[t] }
