package text

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentJSONShape(t *testing.T) {
	got, err := MarshalSegments([]Segment{NewWord("你好", "nǐhǎo"), Plain("，")})
	require.NoError(t, err)
	assert.Equal(t,
		`[{"type":"word","word":{"characters":"你好","pinyin":"nǐhǎo"}},{"type":"plain","text":"，"}]`,
		string(got))
}

func TestMarshalSegmentsNil(t *testing.T) {
	got, err := MarshalSegments(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	segs, err := UnmarshalSegments(got)
	require.NoError(t, err)
	assert.NotNil(t, segs)
	assert.Empty(t, segs)
}

func TestMarshalSegmentsKeepsMarkupVerbatim(t *testing.T) {
	got, err := MarshalSegments([]Segment{Plain("<b>&</b>")})
	require.NoError(t, err)
	assert.Contains(t, string(got), "<b>&</b>")
}

func TestUnmarshalSegmentsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown tag", `[{"type":"emoji","text":"x"}]`},
		{"missing tag", `[{"text":"x"}]`},
		{"plain without text", `[{"type":"plain"}]`},
		{"word without payload", `[{"type":"word"}]`},
		{"word with empty payload", `[{"type":"word","word":{}}]`},
		{"word without characters", `[{"type":"word","word":{"pinyin":"x"}}]`},
		{"word without pinyin", `[{"type":"word","word":{"characters":"你"}}]`},
		{"word with null characters", `[{"type":"word","word":{"characters":null,"pinyin":"nǐ"}}]`},
		{"word payload null", `[{"type":"word","word":null}]`},
		{"plain with null text", `[{"type":"plain","text":null}]`},
		{"upper-case keys", `[{"TYPE":"word","WORD":{"CHARACTERS":"你","PINYIN":"nǐ"}}]`},
		{"mixed-case payload key", `[{"type":"plain","Text":"x"}]`},
		{"mixed-case word field", `[{"type":"word","word":{"Characters":"你","pinyin":"nǐ"}}]`},
		{"not json", `[{"type":`},
		{"object instead of array", `{"type":"plain","text":"x"}`},
		{"null", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSegments([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestUnknownKindError(t *testing.T) {
	_, err := UnmarshalSegments([]byte(`[{"type":"furigana"}]`))
	var uk *UnknownKindError
	require.True(t, errors.As(err, &uk), "expected UnknownKindError, got %v", err)
	assert.Equal(t, Kind("furigana"), uk.Kind)

	_, err = Segment{Kind: "bogus"}.MarshalJSON()
	assert.Error(t, err)
}

func TestTextJSONRoundTrip(t *testing.T) {
	in := Text{
		RawInput: "你好世界",
		Segments: []Segment{NewWord("你好", "nǐhǎo"), Plain("，"), NewWord("世界", "shìjiè")},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"rawInput":"你好世界","segments":[`), string(data))

	var out Text
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Equal(out))
	assert.Equal(t, in, out)
}

func TestTextJSONEmptySegments(t *testing.T) {
	data, err := json.Marshal(Text{})
	require.NoError(t, err)
	assert.Equal(t, `{"rawInput":"","segments":[]}`, string(data))
}

func TestUnmarshalSegmentsIgnoresExtraKeys(t *testing.T) {
	segs, err := UnmarshalSegments([]byte(`[{"type":"word","word":{"characters":"你","pinyin":"nǐ","tone":3},"id":7}]`))
	require.NoError(t, err)
	assert.Equal(t, []Segment{NewWord("你", "nǐ")}, segs)
}

func TestMarshalRejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
	}{
		{"plain", Plain("a\xffb")},
		{"characters", NewWord("你\xfe", "nǐ")},
		{"pinyin", NewWord("你", "n\xc3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MarshalSegments([]Segment{Plain("ok"), tt.seg})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not valid UTF-8")
		})
	}

	_, err := json.Marshal(Text{RawInput: "a\xffb"})
	assert.Error(t, err)
}

func TestTextUnmarshalRequiresExactKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing rawInput", `{"segments":[]}`},
		{"missing segments", `{"rawInput":"x"}`},
		{"null segments", `{"rawInput":"x","segments":null}`},
		{"lower-case key", `{"rawinput":"x","segments":[]}`},
		{"null document", `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out Text
			assert.Error(t, json.Unmarshal([]byte(tt.in), &out))
		})
	}
}
