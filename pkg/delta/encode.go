package delta

import (
	"encoding/json"
	"fmt"
)

type wireOpOut struct {
	Insert     any            `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Encode serializes the document back to its wire format. Parse(Encode(d))
// reproduces the document.
func (d *Document) Encode() (string, error) {
	out := make([]wireOpOut, 0, len(d.ops))
	for _, op := range d.ops {
		w := wireOpOut{Attributes: op.Attributes.wireMap()}
		if op.IsEmbed() {
			embed := map[string]any{"_type": op.Embed.Type}
			if op.Embed.Source != "" {
				embed["source"] = op.Embed.Source
			}
			w.Insert = embed
		} else {
			w.Insert = op.Text
		}
		out = append(out, w)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// wireMap renders the attributes as the wire's attribute object, omitting
// zero values. A fully zero set yields nil so the attributes key is dropped.
func (a Attributes) wireMap() map[string]any {
	if a.isZero() {
		return nil
	}
	m := make(map[string]any)
	if a.Bold {
		m[keyBold] = true
	}
	if a.Italic {
		m[keyItalic] = true
	}
	if a.Underline {
		m[keyUnderline] = true
	}
	if a.Strikethrough {
		m[keyStrikethrough] = true
	}
	if a.Link != "" {
		m[keyLink] = a.Link
	}
	if a.Heading > 0 {
		m[keyHeading] = a.Heading
	}
	if a.Block != "" {
		m[keyBlock] = a.Block
	}
	if a.Checked {
		m[keyChecked] = true
	}
	return m
}
