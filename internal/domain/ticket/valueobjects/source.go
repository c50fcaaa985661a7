package valueobjects

import "fmt"

// Source identifies which store a ticket lives in.
type Source string

const (
	SourceText  Source = "text"
	SourceImage Source = "image"
)

func (s Source) String() string {
	return string(s)
}

func (s Source) IsValid() bool {
	return s == SourceText || s == SourceImage
}

func NewSource(s string) (Source, error) {
	src := Source(s)
	if !src.IsValid() {
		return "", fmt.Errorf("invalid source: %s", s)
	}
	return src, nil
}
