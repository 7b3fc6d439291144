package delta

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDocument marks content that cannot be parsed as a document.
// There is no partial recovery: the caller gets the full document or an
// error wrapping this sentinel.
var ErrMalformedDocument = errors.New("malformed note document")

type wireOp struct {
	Insert     json.RawMessage            `json:"insert"`
	Attributes map[string]json.RawMessage `json:"attributes"`
}

// Parse decodes serialized note content into a Document. The wire format is
// a JSON array of operations, each {"insert": <string|embed>, "attributes":
// {...}}. Unknown attribute keys are ignored; everything else that deviates
// from the format fails with ErrMalformedDocument.
func Parse(content string) (*Document, error) {
	var raw []wireOp
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an array", ErrMalformedDocument)
	}

	ops := make([]Op, 0, len(raw))
	for i, w := range raw {
		op, err := decodeOp(w)
		if err != nil {
			return nil, fmt.Errorf("%w: op %d: %v", ErrMalformedDocument, i, err)
		}
		ops = append(ops, op)
	}
	return &Document{ops: ops}, nil
}

func decodeOp(w wireOp) (Op, error) {
	// json.Unmarshal treats null as a no-op for both string and map targets,
	// so it has to be rejected explicitly.
	if len(w.Insert) == 0 || string(w.Insert) == "null" {
		return Op{}, errors.New("missing insert")
	}

	attrs, err := decodeAttributes(w.Attributes)
	if err != nil {
		return Op{}, err
	}

	var text string
	if err := json.Unmarshal(w.Insert, &text); err == nil {
		return Op{Text: text, Attributes: attrs}, nil
	}

	var embed map[string]json.RawMessage
	if err := json.Unmarshal(w.Insert, &embed); err != nil {
		return Op{}, errors.New("insert must be a string or an embed object")
	}
	rawType, ok := embed["_type"]
	if !ok {
		return Op{}, errors.New("embed without _type")
	}
	var embedType string
	if err := json.Unmarshal(rawType, &embedType); err != nil {
		return Op{}, errors.New("embed _type must be a string")
	}
	var source string
	if rawSource, ok := embed["source"]; ok {
		if err := json.Unmarshal(rawSource, &source); err != nil {
			return Op{}, errors.New("embed source must be a string")
		}
	}
	return Op{Embed: &Embed{Type: embedType, Source: source}, Attributes: attrs}, nil
}

func decodeAttributes(raw map[string]json.RawMessage) (Attributes, error) {
	var attrs Attributes
	for key, value := range raw {
		switch key {
		case keyBold:
			if err := json.Unmarshal(value, &attrs.Bold); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a bool", key)
			}
		case keyItalic:
			if err := json.Unmarshal(value, &attrs.Italic); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a bool", key)
			}
		case keyUnderline:
			if err := json.Unmarshal(value, &attrs.Underline); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a bool", key)
			}
		case keyStrikethrough:
			if err := json.Unmarshal(value, &attrs.Strikethrough); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a bool", key)
			}
		case keyLink:
			if err := json.Unmarshal(value, &attrs.Link); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a string", key)
			}
		case keyHeading:
			if err := json.Unmarshal(value, &attrs.Heading); err != nil {
				return attrs, fmt.Errorf("attribute %q must be an integer", key)
			}
		case keyBlock:
			if err := json.Unmarshal(value, &attrs.Block); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a string", key)
			}
		case keyChecked:
			if err := json.Unmarshal(value, &attrs.Checked); err != nil {
				return attrs, fmt.Errorf("attribute %q must be a bool", key)
			}
		default:
			// Unknown attribute keys are not an error.
		}
	}
	return attrs, nil
}
