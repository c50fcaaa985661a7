package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LabelEncoder maps class indexes back to the labels the model was trained on.
type LabelEncoder struct {
	classes []string
}

// LoadLabelEncoder reads either {"classes": [...]} or a bare JSON array.
func LoadLabelEncoder(path string) (*LabelEncoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label encoder: %w", err)
	}

	var classes []string
	if err := json.Unmarshal(data, &classes); err != nil {
		var wrapped struct {
			Classes []string `json:"classes"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse label encoder %s: %w", path, err)
		}
		classes = wrapped.Classes
	}

	return NewLabelEncoder(classes)
}

func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}

	seen := make(map[string]struct{}, len(classes))
	out := make([]string, len(classes))
	for i, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("label encoder class %d is empty", i)
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("label encoder class %q is duplicated", c)
		}
		seen[c] = struct{}{}
		out[i] = c
	}

	return &LabelEncoder{classes: out}, nil
}

func (e *LabelEncoder) Decode(index int) (string, error) {
	if index < 0 || index >= len(e.classes) {
		return "", fmt.Errorf("class index %d out of range [0, %d)", index, len(e.classes))
	}
	return e.classes[index], nil
}

// Classes returns a copy of the label set in index order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}
