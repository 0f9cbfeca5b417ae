package pipeline

import (
	"bytes"
	"encoding/json"
)

// ShapeError reports input that is neither a single text object nor a list
// of them. It is a normal return value: handlers translate it into a 400
// response with an error body instead of failing the process.
type ShapeError struct {
	Message string
}

func (e *ShapeError) Error() string {
	return e.Message
}

type textObject struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

// ParseInput sniffs the JSON payload shape. An object with a "text" field
// becomes a Single; an array of such objects becomes a Batch (an empty
// array is a valid, empty Batch). Anything else yields a ShapeError.
// The optional "format" field is carried through on every item.
func ParseInput(raw json.RawMessage) (Input, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ShapeError{Message: "empty request body"}
	}

	switch trimmed[0] {
	case '{':
		var obj textObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, &ShapeError{Message: "malformed JSON object: " + err.Error()}
		}
		return Single{Text: obj.Text, Format: obj.Format}, nil
	case '[':
		var objs []textObject
		if err := json.Unmarshal(trimmed, &objs); err != nil {
			return nil, &ShapeError{Message: "malformed JSON array: " + err.Error()}
		}
		items := make([]Single, 0, len(objs))
		for _, o := range objs {
			items = append(items, Single{Text: o.Text, Format: o.Format})
		}
		return Batch{Items: items}, nil
	default:
		return nil, &ShapeError{Message: "not valid input: provide a single object or a list of objects"}
	}
}
