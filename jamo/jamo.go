// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package jamo holds the Korean alphabet primitives: Choseong (초성),
// Jungseong (중성), and Jongseong (종성), their compose/decompose tables,
// and their mapping onto the precomposed Hangul syllables in the
// U+AC00-U+D7A3 block.
//
// The syllable assembly formula (sBase + (cho*jungCount+jung)*jongCount+jong)
// is the same one used by OpenType's Hangul Jamo shaper
// (hb-ot-shaper-hangul.cc's L/V/T composition), just applied ahead of
// rendering instead of during glyph shaping.
package jamo

// Choseong is an initial consonant position, one of the 19 values in
// Unicode Hangul syllable decomposition order.
type Choseong int

// Jungseong is a medial vowel position, one of the 21 values in Unicode
// Hangul syllable decomposition order.
type Jungseong int

// Jongseong is a final consonant position, one of the 28 values
// (including None) in Unicode Hangul syllable decomposition order.
type Jongseong int

const (
	ChoG Choseong = iota
	ChoGG
	ChoN
	ChoD
	ChoDD
	ChoR
	ChoM
	ChoB
	ChoBB
	ChoS
	ChoSS
	ChoNG
	ChoJ
	ChoJJ
	ChoCH
	ChoK
	ChoT
	ChoP
	ChoH
	choCount = 19
)

const (
	JungA Jungseong = iota
	JungAE
	JungYA
	JungYAE
	JungEO
	JungE
	JungYEO
	JungYE
	JungO
	JungWA
	JungWAE
	JungOE
	JungYO
	JungU
	JungWEO
	JungWE
	JungWI
	JungYU
	JungEU
	JungUI
	JungI
	jungCount = 21
)

const (
	JongNone Jongseong = iota
	JongG
	JongGG
	JongGS
	JongN
	JongNJ
	JongNH
	JongD
	JongR
	JongRG
	JongRM
	JongRB
	JongRS
	JongRT
	JongRP
	JongRH
	JongM
	JongB
	JongBS
	JongS
	JongSS
	JongNG
	JongJ
	JongCH
	JongK
	JongT
	JongP
	JongH
	jongCount = 28
)

const (
	sBase     = 0xAC00
	sCount    = choCount * jungCount * jongCount
)

// Index returns the position index used in syllable assembly.
func (c Choseong) Index() int  { return int(c) }
func (v Jungseong) Index() int { return int(v) }
func (t Jongseong) Index() int { return int(t) }

// choCompat/jungCompat/jongCompat map each position to the standalone
// Hangul Compatibility Jamo codepoint (U+3131-U+318E) used to render the
// position on its own, before it has a partner to form a syllable with.
var choCompat = [choCount]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var jungCompat = [jungCount]rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ',
	'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

var jongCompat = [jongCount]rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Rune renders the position as a standalone Hangul Compatibility Jamo
// character, used when a PreeditState has only this one position filled.
func (c Choseong) Rune() rune  { return choCompat[c] }
func (v Jungseong) Rune() rune { return jungCompat[v] }
func (t Jongseong) Rune() rune {
	if t == JongNone {
		return 0
	}
	return jongCompat[t]
}

// ComposeSyllable assembles the precomposed Hangul syllable for
// (cho, jung, jong). jong may be JongNone.
func ComposeSyllable(cho Choseong, jung Jungseong, jong Jongseong) rune {
	return rune(sBase + (cho.Index()*jungCount+jung.Index())*jongCount + jong.Index())
}

// --- Choseong compose/decompose: the 5 geminate pairs (§4.2) ---

var choCompose = map[[2]Choseong]Choseong{
	{ChoG, ChoG}: ChoGG,
	{ChoD, ChoD}: ChoDD,
	{ChoB, ChoB}: ChoBB,
	{ChoS, ChoS}: ChoSS,
	{ChoJ, ChoJ}: ChoJJ,
}

var choDecompose = map[Choseong][2]Choseong{
	ChoGG: {ChoG, ChoG},
	ChoDD: {ChoD, ChoD},
	ChoBB: {ChoB, ChoB},
	ChoSS: {ChoS, ChoS},
	ChoJJ: {ChoJ, ChoJ},
}

// ComposeWith returns the geminate choseong formed from c and other, and
// true if that compose is defined. Undefined everywhere except the 5
// geminate pairs listed in spec.md §4.2.
func (c Choseong) ComposeWith(other Choseong) (Choseong, bool) {
	r, ok := choCompose[[2]Choseong{c, other}]
	return r, ok
}

// Decompose splits a geminate choseong into its two components. Only
// defined for choseong formed via ComposeWith.
func (c Choseong) Decompose() (Choseong, Choseong, bool) {
	pair, ok := choDecompose[c]
	return pair[0], pair[1], ok
}

// --- Jungseong compose/decompose: the 7 canonical diphthongs (§4.2) ---

var jungCompose = map[[2]Jungseong]Jungseong{
	{JungO, JungA}:  JungWA,
	{JungO, JungAE}: JungWAE,
	{JungO, JungI}:  JungOE,
	{JungU, JungEO}: JungWEO,
	{JungU, JungE}:  JungWE,
	{JungU, JungI}:  JungWI,
	{JungEU, JungI}: JungUI,
}

var jungDecompose = map[Jungseong][2]Jungseong{
	JungWA:  {JungO, JungA},
	JungWAE: {JungO, JungAE},
	JungOE:  {JungO, JungI},
	JungWEO: {JungU, JungEO},
	JungWE:  {JungU, JungE},
	JungWI:  {JungU, JungI},
	JungUI:  {JungEU, JungI},
}

// ComposeWith returns the diphthong jungseong formed from v and other.
func (v Jungseong) ComposeWith(other Jungseong) (Jungseong, bool) {
	r, ok := jungCompose[[2]Jungseong{v, other}]
	return r, ok
}

// Decompose splits a diphthong jungseong into its two components.
func (v Jungseong) Decompose() (Jungseong, Jungseong, bool) {
	pair, ok := jungDecompose[v]
	return pair[0], pair[1], ok
}

// --- Jongseong compose/decompose: the 11 canonical clusters (§4.2) ---

var jongCompose = map[[2]Jongseong]Jongseong{
	{JongG, JongS}: JongGS,
	{JongN, JongJ}: JongNJ,
	{JongN, JongH}: JongNH,
	{JongR, JongG}: JongRG,
	{JongR, JongM}: JongRM,
	{JongR, JongB}: JongRB,
	{JongR, JongS}: JongRS,
	{JongR, JongT}: JongRT,
	{JongR, JongP}: JongRP,
	{JongR, JongH}: JongRH,
	{JongB, JongS}: JongBS,
}

var jongDecompose = map[Jongseong][2]Jongseong{
	JongGS: {JongG, JongS},
	JongNJ: {JongN, JongJ},
	JongNH: {JongN, JongH},
	JongRG: {JongR, JongG},
	JongRM: {JongR, JongM},
	JongRB: {JongR, JongB},
	JongRS: {JongR, JongS},
	JongRT: {JongR, JongT},
	JongRP: {JongR, JongP},
	JongRH: {JongR, JongH},
	JongBS: {JongB, JongS},
}

// ComposeWith returns the cluster jongseong formed from t and other.
func (t Jongseong) ComposeWith(other Jongseong) (Jongseong, bool) {
	r, ok := jongCompose[[2]Jongseong{t, other}]
	return r, ok
}

// Decompose splits a cluster jongseong into its two components.
func (t Jongseong) Decompose() (Jongseong, Jongseong, bool) {
	pair, ok := jongDecompose[t]
	return pair[0], pair[1], ok
}

// jongToChoseong converts a single (non-cluster) jongseong to the
// choseong of the same consonant, used for carry-over (spec.md §4.4 rule
// 2c): a final consonant becomes the next syllable's initial when a
// vowel follows. Only defined for jongseong that have a choseong
// counterpart; ㄸㅃㅉ have none and never appear as jongseong.
var jongToChoseong = map[Jongseong]Choseong{
	JongG: ChoG, JongGG: ChoGG, JongN: ChoN, JongD: ChoD, JongR: ChoR,
	JongM: ChoM, JongB: ChoB, JongS: ChoS, JongSS: ChoSS, JongNG: ChoNG,
	JongJ: ChoJ, JongCH: ChoCH, JongK: ChoK, JongT: ChoT, JongP: ChoP, JongH: ChoH,
}

// AsChoseong converts a simple (non-cluster) jongseong into a choseong.
func (t Jongseong) AsChoseong() (Choseong, bool) {
	c, ok := jongToChoseong[t]
	return c, ok
}

// jongFromChoseong is the inverse table used when a layout key presses a
// choseong jamo in a position where the automaton needs it as a final
// consonant (spec.md §4.4 rule 1c).
var jongFromChoseong = map[Choseong]Jongseong{
	ChoG: JongG, ChoGG: JongGG, ChoN: JongN, ChoD: JongD, ChoR: JongR,
	ChoM: JongM, ChoB: JongB, ChoS: JongS, ChoSS: JongSS, ChoNG: JongNG,
	ChoJ: JongJ, ChoCH: JongCH, ChoK: JongK, ChoT: JongT, ChoP: JongP, ChoH: JongH,
}

// AsJongseong converts a choseong into the matching final consonant, if
// one exists (ㄸ, ㅃ, ㅉ have no jongseong form).
func (c Choseong) AsJongseong() (Jongseong, bool) {
	t, ok := jongFromChoseong[c]
	return t, ok
}

// Position identifies which of the three syllable slots a Glyph fills.
type Position int

const (
	PosChoseong Position = iota
	PosJungseong
	PosJongseong
)

// Glyph is a single jamo value tagged with its position, letting layout
// tables and the automaton pass around "a jamo" without knowing ahead of
// time whether it is a Choseong, Jungseong, or Jongseong. Only the field
// matching Position is meaningful.
type Glyph struct {
	Pos  Position
	Cho  Choseong
	Jung Jungseong
	Jong Jongseong
}

// ChoGlyph, JungGlyph, and JongGlyph build a Glyph from a concrete jamo
// value.
func ChoGlyph(c Choseong) Glyph  { return Glyph{Pos: PosChoseong, Cho: c} }
func JungGlyph(v Jungseong) Glyph { return Glyph{Pos: PosJungseong, Jung: v} }
func JongGlyph(t Jongseong) Glyph { return Glyph{Pos: PosJongseong, Jong: t} }

// Rune renders the glyph standalone, as spec.md §4.2's "lone jamo"
// fallback does when a PreeditState has only one position filled.
func (g Glyph) Rune() rune {
	switch g.Pos {
	case PosChoseong:
		return g.Cho.Rune()
	case PosJungseong:
		return g.Jung.Rune()
	default:
		return g.Jong.Rune()
	}
}
