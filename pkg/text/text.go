// Package text defines the annotated document persisted by rubylens: the raw
// input string and its segmentation into plain runs and vocabulary words.
package text

import "strings"

// Word is a vocabulary token with its pronunciation annotation.
type Word struct {
	Characters    string `json:"characters"`
	Pronunciation string `json:"pinyin"`
}

// Kind discriminates the Segment variants.
type Kind string

const (
	KindPlain Kind = "plain"
	KindWord  Kind = "word"
)

// Segment is one piece of a Text: either literal text (KindPlain) or an
// annotated Word (KindWord). Only the field matching Kind is meaningful.
type Segment struct {
	Kind Kind
	Text string
	Word Word
}

// Plain returns a plain segment.
func Plain(s string) Segment {
	return Segment{Kind: KindPlain, Text: s}
}

// NewWord returns a word segment.
func NewWord(characters, pronunciation string) Segment {
	return Segment{Kind: KindWord, Word: Word{Characters: characters, Pronunciation: pronunciation}}
}

// Content returns the text this segment contributes to the document.
func (s Segment) Content() string {
	if s.Kind == KindWord {
		return s.Word.Characters
	}
	return s.Text
}

// Text is the single persisted document.
type Text struct {
	RawInput string    `json:"rawInput"`
	Segments []Segment `json:"segments"`
}

// Content concatenates the content of every segment. For a well-formed Text
// it equals RawInput.
func (t Text) Content() string {
	var b strings.Builder
	for _, s := range t.Segments {
		b.WriteString(s.Content())
	}
	return b.String()
}

// Words returns the word segments in document order.
func (t Text) Words() []Word {
	var out []Word
	for _, s := range t.Segments {
		if s.Kind == KindWord {
			out = append(out, s.Word)
		}
	}
	return out
}

// Equal reports whether both documents have the same raw input and the same
// segments in the same order. A nil and an empty segment list are equal.
func (t Text) Equal(o Text) bool {
	if t.RawInput != o.RawInput || len(t.Segments) != len(o.Segments) {
		return false
	}
	for i := range t.Segments {
		if t.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}
