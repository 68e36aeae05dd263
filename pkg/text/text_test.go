package text

import "testing"

func TestContentReproducesRawInput(t *testing.T) {
	s := Sample()
	if s.Content() != s.RawInput {
		t.Fatalf("sample content %q != raw input %q", s.Content(), s.RawInput)
	}
	if len(s.Words()) == 0 {
		t.Fatal("sample has no words")
	}
}

func TestEqual(t *testing.T) {
	a := Text{RawInput: "文本", Segments: []Segment{NewWord("文本", "wénběn")}}
	b := Text{RawInput: "文本", Segments: []Segment{NewWord("文本", "wénběn")}}
	if !a.Equal(b) {
		t.Fatal("expected equal texts")
	}
	b.Segments[0].Word.Pronunciation = "wenben"
	if a.Equal(b) {
		t.Fatal("expected texts with different readings to differ")
	}
	if !(Text{}).Equal(Text{Segments: []Segment{}}) {
		t.Fatal("nil and empty segment lists should compare equal")
	}
}

func TestSegmentContent(t *testing.T) {
	if got := NewWord("世界", "shìjiè").Content(); got != "世界" {
		t.Fatalf("word content = %q", got)
	}
	if got := Plain("，").Content(); got != "，" {
		t.Fatalf("plain content = %q", got)
	}
}
