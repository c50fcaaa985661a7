package ticket

import (
	"fmt"
	"strings"
)

// Classification is the classifier verdict for one ticket. Both labels come
// from the trained label sets and are never empty.
type Classification struct {
	Category string
	Priority string
}

func NewClassification(category, priority string) (Classification, error) {
	category = strings.TrimSpace(category)
	priority = strings.TrimSpace(priority)
	if category == "" {
		return Classification{}, fmt.Errorf("category is required")
	}
	if priority == "" {
		return Classification{}, fmt.Errorf("priority is required")
	}
	return Classification{Category: category, Priority: priority}, nil
}
