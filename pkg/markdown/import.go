// Package markdown converts markdown documents into the note content
// format. It is the inverse of the document's markdown rendering: documents
// restricted to the supported vocabulary survive an import/render round trip
// structurally unchanged.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"keepnotes-be/pkg/delta"
)

// Importer parses markdown into documents. Safe for concurrent use.
type Importer struct {
	md goldmark.Markdown
}

// NewImporter builds an importer with task-list and strikethrough support
// enabled, matching the document vocabulary.
func NewImporter() *Importer {
	return &Importer{
		md: goldmark.New(goldmark.WithExtensions(extension.TaskList, extension.Strikethrough)),
	}
}

// Import parses a markdown document. Markdown constructs outside the
// document vocabulary (tables, inline code, raw HTML other than <u>) keep
// their text and lose their formatting. An empty input imports as the
// canonical empty document.
func (i *Importer) Import(markdown string) *delta.Document {
	source := []byte(markdown)
	root := i.md.Parser().Parse(text.NewReader(source))

	b := &builder{source: source}
	b.walkBlocks(root, delta.Attributes{})
	if len(b.ops) == 0 {
		b.ops = append(b.ops, delta.Op{Text: "\n"})
	}
	return delta.NewDocument(b.ops...)
}

type builder struct {
	source      []byte
	ops         []delta.Op
	underline   bool
	trimLeading bool
}

func (b *builder) span(text string, attrs delta.Attributes) {
	// The checkbox parser leaves the separating space on the text node that
	// follows it.
	if b.trimLeading && text != "" {
		text = strings.TrimPrefix(text, " ")
		b.trimLeading = false
	}
	if text == "" {
		return
	}
	if b.underline {
		attrs.Underline = true
	}
	b.ops = append(b.ops, delta.Op{Text: text, Attributes: attrs})
}

// endLine emits the newline sentinel carrying the line's block attributes.
func (b *builder) endLine(attrs delta.Attributes) {
	b.trimLeading = false
	b.ops = append(b.ops, delta.Op{Text: "\n", Attributes: attrs})
}

func (b *builder) walkBlocks(parent ast.Node, blockAttrs delta.Attributes) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			b.writeInline(n, delta.Attributes{})
			level := n.Level
			if level > 3 {
				level = 3
			}
			b.endLine(delta.Attributes{Heading: level})

		case *ast.Paragraph:
			b.writeInline(n, delta.Attributes{})
			b.endLine(blockAttrs)

		case *ast.TextBlock:
			b.writeInline(n, delta.Attributes{})
			b.endLine(blockAttrs)

		case *ast.Blockquote:
			b.walkBlocks(n, delta.Attributes{Block: delta.BlockQuote})

		case *ast.List:
			b.walkList(n)

		case *ast.FencedCodeBlock:
			b.writeCodeLines(n.Lines())

		case *ast.CodeBlock:
			b.writeCodeLines(n.Lines())

		case *ast.ThematicBreak:
			b.ops = append(b.ops, delta.Op{Embed: &delta.Embed{Type: delta.EmbedHorizontalRule}})
			b.endLine(delta.Attributes{})

		default:
			if child.HasChildren() {
				b.walkBlocks(child, blockAttrs)
			}
		}
	}
}

func (b *builder) walkList(list *ast.List) {
	lineAttrs := delta.Attributes{Block: delta.BlockBullet}
	if list.IsOrdered() {
		lineAttrs = delta.Attributes{Block: delta.BlockNumber}
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		itemAttrs := lineAttrs
		// The task-list extension puts the checkbox as the first inline node
		// of the item's first block.
		if first := item.FirstChild(); first != nil {
			if checkbox, ok := first.FirstChild().(*east.TaskCheckBox); ok {
				itemAttrs = delta.Attributes{Block: delta.BlockChecklist, Checked: checkbox.IsChecked}
			}
		}

		for block := item.FirstChild(); block != nil; block = block.NextSibling() {
			switch n := block.(type) {
			case *ast.TextBlock:
				b.writeInline(n, delta.Attributes{})
				b.endLine(itemAttrs)
			case *ast.Paragraph:
				b.writeInline(n, delta.Attributes{})
				b.endLine(itemAttrs)
			case *ast.List:
				// Nested lists flatten to their own lines; the vocabulary
				// carries no indentation.
				b.walkList(n)
			}
		}
	}
}

func (b *builder) writeCodeLines(lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(b.source)), "\n")
		b.span(line, delta.Attributes{})
		b.endLine(delta.Attributes{Block: delta.BlockCode})
	}
}

func (b *builder) writeInline(parent ast.Node, attrs delta.Attributes) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.span(string(n.Segment.Value(b.source)), attrs)
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.endLine(delta.Attributes{})
			}

		case *ast.String:
			b.span(string(n.Value), attrs)

		case *ast.Emphasis:
			next := attrs
			if n.Level >= 2 {
				next.Bold = true
			} else {
				next.Italic = true
			}
			b.writeInline(n, next)

		case *east.Strikethrough:
			next := attrs
			next.Strikethrough = true
			b.writeInline(n, next)

		case *ast.Link:
			next := attrs
			next.Link = string(n.Destination)
			b.writeInline(n, next)

		case *ast.AutoLink:
			url := string(n.URL(b.source))
			next := attrs
			next.Link = url
			b.span(url, next)

		case *ast.Image:
			b.ops = append(b.ops, delta.Op{
				Embed: &delta.Embed{Type: delta.EmbedImage, Source: string(n.Destination)},
			})

		case *ast.CodeSpan:
			// Inline code is outside the vocabulary; keep the text.
			b.writeInline(n, attrs)

		case *ast.RawHTML:
			switch rawHTML(n, b.source) {
			case "<u>":
				b.underline = true
			case "</u>":
				b.underline = false
			}

		case *east.TaskCheckBox:
			// The list walker reads the checked state; here it only marks
			// that the next span starts with the separator space.
			b.trimLeading = true

		default:
			if child.HasChildren() {
				b.writeInline(child, attrs)
			}
		}
	}
}

func rawHTML(n *ast.RawHTML, source []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.ToLower(strings.TrimSpace(sb.String()))
}
