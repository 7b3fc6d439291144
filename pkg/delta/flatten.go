package delta

import (
	"strings"
	"unicode/utf8"
)

// previewMaxRunes bounds the preview to what a note tile can show.
const previewMaxRunes = 300

// Checklist glyphs used in previews.
const (
	glyphChecked   = "✅ "
	glyphUnchecked = "⬜ "
)

// PlainText concatenates every textual operation of the document. Embeds
// contribute nothing. The document-final newline sentinel is structural and
// stripped, so the canonical empty document flattens to "".
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, op := range d.ops {
		if op.IsEmbed() {
			continue
		}
		sb.WriteString(op.Text)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Preview flattens the document for a note tile: checklist lines render with
// a state glyph, lines holding only embeds (horizontal rules, images) are
// elided, the result is whitespace-trimmed and bounded to a fixed rune
// length.
func (d *Document) Preview() string {
	return d.PreviewN(previewMaxRunes)
}

// PreviewN is Preview with a caller-chosen rune bound. A bound of zero or
// less falls back to the default.
func (d *Document) PreviewN(maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = previewMaxRunes
	}
	var sb strings.Builder
	for _, line := range d.Lines() {
		if line.embedsOnly() {
			continue
		}
		if line.Attributes.Block == BlockChecklist {
			if line.Attributes.Checked {
				sb.WriteString(glyphChecked)
			} else {
				sb.WriteString(glyphUnchecked)
			}
		}
		sb.WriteString(line.text())
		sb.WriteByte('\n')
	}
	return truncateRunes(strings.TrimSpace(sb.String()), maxRunes)
}

// IsEmpty reports whether the document flattens to nothing a tile could
// show. The canonical empty document is empty; a document holding only
// elided embeds is too.
func (d *Document) IsEmpty() bool {
	return d.Preview() == ""
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
