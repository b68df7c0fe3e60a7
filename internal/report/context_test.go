package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContext(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []ContextItem
	}{
		{name: "empty", raw: "", want: nil},
		{name: "null", raw: "null", want: nil},
		{
			name: "encoded string",
			raw:  `"\"plain note\""`,
			want: []ContextItem{{Kind: ContextText, Value: "plain note"}},
		},
		{
			name: "encoded object",
			raw:  `"{\"title\":\"shot\",\"value\":\"shots/a.PNG\"}"`,
			want: []ContextItem{{Title: "shot", Kind: ContextImage, Value: "shots/a.PNG"}},
		},
		{
			name: "array",
			raw:  `["https://example.com/page", "videos/run.webm"]`,
			want: []ContextItem{
				{Kind: ContextLink, Value: "https://example.com/page"},
				{Kind: ContextVideo, Value: "videos/run.webm"},
			},
		},
		{
			name: "structured value",
			raw:  `{"title":"payload","value":{"id":1}}`,
			want: []ContextItem{{Title: "payload", Kind: ContextJSON, Value: "{\n  \"id\": 1\n}"}},
		},
		{
			name: "unparseable",
			raw:  `{oops`,
			want: []ContextItem{{Kind: ContextText, Value: "{oops"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeContext(json.RawMessage(tt.raw)))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want ContextKind
	}{
		{"https://example.com/a.png", ContextImage},
		{"http://example.com", ContextLink},
		{"javascript:alert(1)", ContextText},
		{"data:image/png;base64,AAAA", ContextText},
		{"clip.mov", ContextVideo},
		{"just words here", ContextText},
		{"<b>bold</b>", ContextText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, classify("", tt.in).Kind)
		})
	}
}
