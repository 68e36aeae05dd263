// Package segment turns raw Japanese input into an annotated text.Text using
// the kagome morphological analyzer: kanji-bearing tokens become words
// annotated with their hiragana reading, everything else stays plain.
package segment

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/japaniel/rubylens/pkg/text"
)

// Token is one morpheme from the analyzer with the IPA features this
// package reads.
type Token struct {
	Surface       string   // as written in the input, e.g. "行っ"
	BaseForm      string   // dictionary form, e.g. "行く"
	Reading       string   // katakana reading, e.g. "イッ"
	PartsOfSpeech []string // full IPA feature list
	PrimaryPOS    string
}

// Analyzer handles text segmentation.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a new tokenizer instance backed by the IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze breaks s into tokens with readings and base forms. Every token is
// kept, punctuation and whitespace included.
func (a *Analyzer) Analyze(s string) []Token {
	var out []Token
	for _, tok := range a.t.Tokenize(s) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		// IPA layout: 0 POS, 1-3 sub-POS, 4-5 conjugation, 6 base form, 7 reading.
		f := tok.Features()
		out = append(out, Token{
			Surface:       tok.Surface,
			BaseForm:      featureOr(f, 6, tok.Surface),
			Reading:       featureOr(f, 7, ""),
			PartsOfSpeech: f,
			PrimaryPOS:    featureOr(f, 0, ""),
		})
	}
	return out
}

// featureOr returns f[i], or fallback when the feature is absent or "*".
func featureOr(f []string, i int, fallback string) string {
	if i < len(f) && f[i] != "*" {
		return f[i]
	}
	return fallback
}

// Segment analyzes raw and returns it as a Text whose segment content
// concatenates back to raw exactly. Input the tokenizer does not emit as a
// token (such as skipped whitespace) is kept as plain text.
func (a *Analyzer) Segment(raw string) text.Text {
	var b builder
	cursor := 0
	for _, tok := range a.Analyze(raw) {
		if tok.Surface == "" {
			continue
		}
		idx := strings.Index(raw[cursor:], tok.Surface)
		if idx < 0 {
			continue
		}
		b.plain(raw[cursor : cursor+idx])
		cursor += idx + len(tok.Surface)

		if hasHan(tok.Surface) && tok.Reading != "" {
			b.word(tok.Surface, ToHiragana(tok.Reading))
		} else {
			b.plain(tok.Surface)
		}
	}
	b.plain(raw[cursor:])

	return text.Text{RawInput: raw, Segments: b.segs}
}

// builder appends segments, merging adjacent plain runs.
type builder struct {
	segs []text.Segment
}

func (b *builder) plain(s string) {
	if s == "" {
		return
	}
	if n := len(b.segs); n > 0 && b.segs[n-1].Kind == text.KindPlain {
		b.segs[n-1].Text += s
		return
	}
	b.segs = append(b.segs, text.Plain(s))
}

func (b *builder) word(characters, reading string) {
	b.segs = append(b.segs, text.NewWord(characters, reading))
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Katakana ァ..ヶ sit exactly 0x60 code points above their hiragana forms.
const (
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	kanaOffset    = 'ァ' - 'ぁ'
)

// ToHiragana rewrites katakana as hiragana and leaves everything else,
// including the long vowel mark ー, untouched.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFirst && r <= katakanaLast {
			return r - kanaOffset
		}
		return r
	}, s)
}
