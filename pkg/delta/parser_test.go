package delta

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantOps int
	}{
		{
			name:    "canonical empty document",
			content: EmptyDocument,
			wantOps: 1,
		},
		{
			name:    "empty array",
			content: `[]`,
			wantOps: 0,
		},
		{
			name:    "plain text op",
			content: `[{"insert":"Hello\n"}]`,
			wantOps: 1,
		},
		{
			name:    "text with inline attributes",
			content: `[{"insert":"bold","attributes":{"b":true}},{"insert":"\n"}]`,
			wantOps: 2,
		},
		{
			name:    "horizontal rule embed",
			content: `[{"insert":{"_type":"hr"}},{"insert":"\n"}]`,
			wantOps: 2,
		},
		{
			name:    "image embed with source",
			content: `[{"insert":{"_type":"image","source":"file:///a.png"}},{"insert":"\n"}]`,
			wantOps: 2,
		},
		{
			name:    "unknown attribute keys are ignored",
			content: `[{"insert":"x","attributes":{"font":"serif","b":true}},{"insert":"\n"}]`,
			wantOps: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.content)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v, want nil", tt.content, err)
			}
			if len(doc.Ops()) != tt.wantOps {
				t.Errorf("len(Ops) = %d, want %d", len(doc.Ops()), tt.wantOps)
			}
		})
	}
}

func TestParseDecodesTypedAttributes(t *testing.T) {
	content := `[
		{"insert":"docs","attributes":{"a":"https://example.com","i":true}},
		{"insert":"\n","attributes":{"heading":2}},
		{"insert":"item"},
		{"insert":"\n","attributes":{"block":"cl","checked":true}}
	]`

	doc, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse error = %v, want nil", err)
	}

	ops := doc.Ops()
	if ops[0].Attributes.Link != "https://example.com" {
		t.Errorf("Link = %q, want %q", ops[0].Attributes.Link, "https://example.com")
	}
	if !ops[0].Attributes.Italic {
		t.Error("Italic = false, want true")
	}
	if ops[1].Attributes.Heading != 2 {
		t.Errorf("Heading = %d, want 2", ops[1].Attributes.Heading)
	}
	if ops[3].Attributes.Block != BlockChecklist {
		t.Errorf("Block = %q, want %q", ops[3].Attributes.Block, BlockChecklist)
	}
	if !ops[3].Attributes.Checked {
		t.Error("Checked = false, want true")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "hello world"},
		{"empty string", ""},
		{"json null", "null"},
		{"object instead of array", `{"insert":"x"}`},
		{"op without insert", `[{}]`},
		{"null insert", `[{"insert":null}]`},
		{"numeric insert", `[{"insert":42}]`},
		{"embed without _type", `[{"insert":{"source":"a.png"}}]`},
		{"non-string embed type", `[{"insert":{"_type":7}}]`},
		{"bold with string value", `[{"insert":"x","attributes":{"b":"yes"}}]`},
		{"heading with string value", `[{"insert":"\n","attributes":{"heading":"big"}}]`},
		{"checked with string value", `[{"insert":"\n","attributes":{"block":"cl","checked":"done"}}]`},
		{"attributes not an object", `[{"insert":"x","attributes":"b"}]`},
		{"trailing garbage", `[{"insert":"x"}] extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.content)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", tt.content, doc)
			}
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("error %v does not wrap ErrMalformedDocument", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := NewDocument(
		Op{Text: "Plan", Attributes: Attributes{Bold: true}},
		Op{Text: "\n", Attributes: Attributes{Heading: 1}},
		Op{Text: "milk"},
		Op{Text: "\n", Attributes: Attributes{Block: BlockChecklist, Checked: true}},
		Op{Embed: &Embed{Type: EmbedHorizontalRule}},
		Op{Text: "\n"},
		Op{Text: "see ", Attributes: Attributes{Italic: true}},
		Op{Text: "docs", Attributes: Attributes{Link: "https://example.com"}},
		Op{Text: "\n"},
	)

	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode error = %v, want nil", err)
	}

	parsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse(Encode(doc)) error = %v, want nil", err)
	}
	if got, want := parsed.Markdown(), doc.Markdown(); got != want {
		t.Errorf("round-tripped markdown = %q, want %q", got, want)
	}
	if got, want := parsed.PlainText(), doc.PlainText(); got != want {
		t.Errorf("round-tripped plain text = %q, want %q", got, want)
	}
}
