package segment

import (
	"testing"

	"github.com/japaniel/rubylens/pkg/text"
)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	if err != nil {
		t.Fatalf("Failed to create analyzer: %v", err)
	}
	return a
}

func TestSegmentAnnotatesKanji(t *testing.T) {
	a := newAnalyzer(t)
	got := a.Segment("猫が好きです。")

	if got.RawInput != "猫が好きです。" {
		t.Fatalf("RawInput = %q", got.RawInput)
	}
	if got.Content() != got.RawInput {
		t.Fatalf("content %q does not reproduce raw input", got.Content())
	}
	if len(got.Segments) == 0 {
		t.Fatal("no segments")
	}
	if want := text.NewWord("猫", "ねこ"); got.Segments[0] != want {
		t.Fatalf("first segment = %+v, want %+v", got.Segments[0], want)
	}
	for _, w := range got.Words() {
		if !hasHan(w.Characters) {
			t.Errorf("word without kanji: %+v", w)
		}
		if w.Pronunciation == "" {
			t.Errorf("word without reading: %+v", w)
		}
	}
}

func TestSegmentPreservesEverything(t *testing.T) {
	a := newAnalyzer(t)
	inputs := []string{
		"",
		"   ",
		"東京 タワーに行った。\n次の日、 2024年に帰る！",
		"abc 123 xyz",
		"「日本語」と English の mix\t\t終わり",
	}
	for _, in := range inputs {
		got := a.Segment(in)
		if got.Content() != in {
			t.Errorf("Segment(%q) content = %q", in, got.Content())
		}
		for i := 1; i < len(got.Segments); i++ {
			if got.Segments[i].Kind == text.KindPlain && got.Segments[i-1].Kind == text.KindPlain {
				t.Errorf("Segment(%q): adjacent plain segments at %d", in, i)
			}
		}
	}
}

func TestSegmentWithoutKanjiIsPlain(t *testing.T) {
	a := newAnalyzer(t)
	got := a.Segment("ひらがなとカタカナ")
	if len(got.Segments) != 1 || got.Segments[0].Kind != text.KindPlain {
		t.Fatalf("expected one plain segment, got %+v", got.Segments)
	}
}

func TestAnalyzeKeepsPunctuation(t *testing.T) {
	a := newAnalyzer(t)
	tokens := a.Analyze("犬。")
	if len(tokens) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Surface != "犬" || tokens[0].Reading != "イヌ" {
		t.Fatalf("unexpected first token: %+v", tokens[0])
	}
	if tokens[len(tokens)-1].Surface != "。" {
		t.Fatalf("expected trailing 。, got %+v", tokens[len(tokens)-1])
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ア", "あ"},
		{"カ", "か"},
		{"ガ", "が"},
		{"パ", "ぱ"},
		{"ン", "ん"},
		{"ー", "ー"},
		{"abc", "abc"},
		{"あいう", "あいう"},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.in); got != tt.out {
			t.Errorf("ToHiragana(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
}
