package text

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// segmentJSON is the wire shape of a Segment. Pointers distinguish a missing
// payload from an empty one.
type segmentJSON struct {
	Type Kind    `json:"type"`
	Text *string `json:"text,omitempty"`
	Word *Word   `json:"word,omitempty"`
}

// UnknownKindError is returned when a segment carries a type tag this
// package does not know.
type UnknownKindError struct{ Kind Kind }

func (e *UnknownKindError) Error() string {
	if e.Kind == "" {
		return "segment: missing type tag"
	}
	return fmt.Sprintf("segment: unknown type %q", string(e.Kind))
}

// MarshalJSON encodes the segment with its "type" tag. Strings that are not
// valid UTF-8 are an error: encoding/json would otherwise replace the bad
// bytes and the segment would not decode back to itself.
func (s Segment) MarshalJSON() ([]byte, error) {
	var w segmentJSON
	switch s.Kind {
	case KindPlain:
		if err := checkUTF8("text", s.Text); err != nil {
			return nil, err
		}
		t := s.Text
		w = segmentJSON{Type: KindPlain, Text: &t}
	case KindWord:
		if err := checkUTF8("characters", s.Word.Characters); err != nil {
			return nil, err
		}
		if err := checkUTF8("pinyin", s.Word.Pronunciation); err != nil {
			return nil, err
		}
		word := s.Word
		w = segmentJSON{Type: KindWord, Word: &word}
	default:
		return nil, &UnknownKindError{Kind: s.Kind}
	}
	return marshalNoEscape(w)
}

// UnmarshalJSON decodes a tagged segment. Keys match exactly, so "TYPE" or
// "Text" do not count. Unknown tags, variants without their payload and
// words missing either field are errors. Unrecognized extra keys are ignored.
func (s *Segment) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "segment")
	if err != nil {
		return err
	}

	var kind Kind
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &kind); err != nil {
			return fmt.Errorf("segment: \"type\": %w", err)
		}
	}

	switch kind {
	case KindPlain:
		t, err := requiredString(fields, "text", "plain segment")
		if err != nil {
			return err
		}
		*s = Plain(t)
	case KindWord:
		raw, ok := fields["word"]
		if !ok {
			return fmt.Errorf("segment: word segment missing \"word\"")
		}
		wf, err := decodeObject(raw, "word")
		if err != nil {
			return err
		}
		chars, err := requiredString(wf, "characters", "word")
		if err != nil {
			return err
		}
		pron, err := requiredString(wf, "pinyin", "word")
		if err != nil {
			return err
		}
		*s = NewWord(chars, pron)
	default:
		return &UnknownKindError{Kind: kind}
	}
	return nil
}

// decodeObject decodes a JSON object into its raw members. null is rejected.
func decodeObject(data []byte, what string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%s: expected object, got null", what)
	}
	return fields, nil
}

// requiredString reads a string member that must be present and non-null.
func requiredString(fields map[string]json.RawMessage, key, what string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("%s: missing %q", what, key)
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%s: %q: %w", what, key, err)
	}
	return v, nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func checkUTF8(field, v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("segment: %s is not valid UTF-8", field)
	}
	return nil
}

// MarshalSegments encodes a segment list as a JSON array. A nil list encodes
// as "[]". Non-ASCII and HTML-significant characters are written verbatim.
func MarshalSegments(segs []Segment) ([]byte, error) {
	if segs == nil {
		segs = []Segment{}
	}
	return marshalNoEscape(segs)
}

// UnmarshalSegments decodes a JSON array produced by MarshalSegments. The
// result is never nil on success.
func UnmarshalSegments(data []byte) ([]Segment, error) {
	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return nil, err
	}
	if segs == nil {
		// JSON null is not a segment list.
		if isNull(data) {
			return nil, fmt.Errorf("segments: expected array, got null")
		}
		segs = []Segment{}
	}
	return segs, nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON encodes the caller-facing document shape. A nil segment list is
// written as an empty array.
func (t Text) MarshalJSON() ([]byte, error) {
	if !utf8.ValidString(t.RawInput) {
		return nil, fmt.Errorf("text: rawInput is not valid UTF-8")
	}
	type plainText Text
	w := plainText(t)
	if w.Segments == nil {
		w.Segments = []Segment{}
	}
	return marshalNoEscape(w)
}

// UnmarshalJSON decodes the caller-facing document shape. Both "rawInput" and
// "segments" are required and matched exactly.
func (t *Text) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, "text")
	if err != nil {
		return err
	}
	raw, err := requiredString(fields, "rawInput", "text")
	if err != nil {
		return err
	}
	segData, ok := fields["segments"]
	if !ok {
		return fmt.Errorf("text: missing %q", "segments")
	}
	segs, err := UnmarshalSegments(segData)
	if err != nil {
		return err
	}
	*t = Text{RawInput: raw, Segments: segs}
	return nil
}
