package delta

import (
	"fmt"
	"strings"
)

// Markdown renders the document as markdown. The rendering is deterministic:
// the same document always yields the same output, and a markdown document
// restricted to the supported vocabulary survives an import/render round
// trip structurally unchanged.
func (d *Document) Markdown() string {
	var sb strings.Builder
	ordinal := 0
	inCode := false

	for _, line := range d.Lines() {
		if line.Attributes.Block == BlockCode {
			if !inCode {
				sb.WriteString("```\n")
				inCode = true
			}
			sb.WriteString(line.text())
			sb.WriteByte('\n')
			continue
		}
		if inCode {
			sb.WriteString("```\n")
			inCode = false
		}

		// Ordinals increment through a run of ordered-list lines and reset
		// when the run ends.
		if line.Attributes.Block == BlockNumber {
			ordinal++
		} else {
			ordinal = 0
		}

		switch {
		case line.Attributes.Heading > 0:
			sb.WriteString(strings.Repeat("#", clampHeading(line.Attributes.Heading)))
			sb.WriteByte(' ')
		case line.Attributes.Block == BlockBullet:
			sb.WriteString("- ")
		case line.Attributes.Block == BlockNumber:
			fmt.Fprintf(&sb, "%d. ", ordinal)
		case line.Attributes.Block == BlockChecklist:
			if line.Attributes.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		case line.Attributes.Block == BlockQuote:
			sb.WriteString("> ")
		}

		for _, span := range coalesceSpans(line.Spans) {
			writeSpan(&sb, span)
		}
		sb.WriteByte('\n')
	}
	if inCode {
		sb.WriteString("```\n")
	}
	return sb.String()
}

// coalesceSpans merges consecutive text spans with identical attributes so
// each formatting run gets a single wrapper pair.
func coalesceSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	merged := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Embed == nil && len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Embed == nil && last.Attributes == span.Attributes {
				last.Text += span.Text
				continue
			}
		}
		merged = append(merged, span)
	}
	return merged
}

func clampHeading(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}

func writeSpan(sb *strings.Builder, span Span) {
	if span.Embed != nil {
		switch span.Embed.Type {
		case EmbedHorizontalRule:
			sb.WriteString("---")
		case EmbedImage:
			fmt.Fprintf(sb, "![](%s)", span.Embed.Source)
		}
		return
	}

	a := span.Attributes
	var w strings.Builder

	// Wrapper order: Bold > Italic > Underline > Strike. Markdown has no
	// native underline, so HTML <u> is used.
	if a.Bold {
		w.WriteString("**")
	}
	if a.Italic {
		w.WriteString("_")
	}
	if a.Underline {
		w.WriteString("<u>")
	}
	if a.Strikethrough {
		w.WriteString("~~")
	}

	w.WriteString(span.Text)

	if a.Strikethrough {
		w.WriteString("~~")
	}
	if a.Underline {
		w.WriteString("</u>")
	}
	if a.Italic {
		w.WriteString("_")
	}
	if a.Bold {
		w.WriteString("**")
	}

	if a.Link != "" {
		fmt.Fprintf(sb, "[%s](%s)", w.String(), a.Link)
		return
	}
	sb.WriteString(w.String())
}
