package delta

import "strings"

// Attribute keys understood on the wire. Anything outside this vocabulary is
// dropped while decoding.
const (
	keyBold          = "b"
	keyItalic        = "i"
	keyUnderline     = "u"
	keyStrikethrough = "s"
	keyLink          = "a"
	keyHeading       = "heading"
	keyBlock         = "block"
	keyChecked       = "checked"
)

// Block attribute values.
const (
	BlockBullet    = "ul"
	BlockNumber    = "ol"
	BlockChecklist = "cl"
	BlockQuote     = "quote"
	BlockCode      = "code"
)

// Embed types.
const (
	EmbedHorizontalRule = "hr"
	EmbedImage          = "image"
)

// EmptyDocument is the canonical serialized form of a document with no
// content: a single newline sentinel.
const EmptyDocument = `[{"insert":"\n"}]`

// Attributes is the closed set of formatting flags an operation can carry.
// Inline flags (bold, italic, underline, strikethrough, link) describe the
// text of the operation itself; block flags (heading, block, checked) are
// only meaningful on the newline sentinel that terminates a line.
type Attributes struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Link          string
	Heading       int
	Block         string
	Checked       bool
}

func (a Attributes) isZero() bool {
	return a == Attributes{}
}

// Embed is a non-text payload embedded in the document, such as a horizontal
// rule or an image reference.
type Embed struct {
	Type   string
	Source string
}

// Op is a single operation of the document: either a text run or an embed,
// plus its attributes.
type Op struct {
	Text       string
	Embed      *Embed
	Attributes Attributes
}

// IsEmbed reports whether the operation carries an embed payload.
func (o Op) IsEmbed() bool {
	return o.Embed != nil
}

// Span is a run of identically formatted content within a single line.
type Span struct {
	Text       string
	Embed      *Embed
	Attributes Attributes
}

// Line is one logical line of the document. Its attributes come from the
// newline sentinel that terminated it; only the block-level fields (Heading,
// Block, Checked) are meaningful there.
type Line struct {
	Spans      []Span
	Attributes Attributes
}

// embedsOnly reports whether the line holds at least one span and every span
// is an embed.
func (l Line) embedsOnly() bool {
	if len(l.Spans) == 0 {
		return false
	}
	for _, s := range l.Spans {
		if s.Embed == nil {
			return false
		}
	}
	return true
}

// text concatenates the textual spans of the line. Embeds contribute
// nothing.
func (l Line) text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		if s.Embed != nil {
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Document is a parsed, immutable operation sequence. All traversals are
// read-only, so a single instance is safe for concurrent use.
type Document struct {
	ops []Op
}

// NewDocument builds a document directly from operations. Used by importers
// and seed data; persisted content normally arrives through Parse.
func NewDocument(ops ...Op) *Document {
	return &Document{ops: ops}
}

// Ops exposes the operation sequence. The slice is shared with the document;
// treat it as read-only.
func (d *Document) Ops() []Op {
	return d.ops
}

// Lines splits the operation stream into logical lines. A newline inside a
// text operation terminates the current line, and the attributes of the
// operation containing that newline become the line's attributes. A final
// line without a terminating newline is flushed with empty attributes.
func (d *Document) Lines() []Line {
	var lines []Line
	var cur []Span
	for _, op := range d.ops {
		if op.IsEmbed() {
			cur = append(cur, Span{Embed: op.Embed, Attributes: op.Attributes})
			continue
		}
		text := op.Text
		for {
			idx := strings.IndexByte(text, '\n')
			if idx < 0 {
				break
			}
			if idx > 0 {
				cur = append(cur, Span{Text: text[:idx], Attributes: op.Attributes})
			}
			lines = append(lines, Line{Spans: cur, Attributes: op.Attributes})
			cur = nil
			text = text[idx+1:]
		}
		if text != "" {
			cur = append(cur, Span{Text: text, Attributes: op.Attributes})
		}
	}
	if len(cur) > 0 {
		lines = append(lines, Line{Spans: cur})
	}
	return lines
}
