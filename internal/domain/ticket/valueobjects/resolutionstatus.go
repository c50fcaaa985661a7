package valueobjects

import "fmt"

// ResolutionStatus records whether the stored resolution came from the
// generator or stands in for a failed generation.
type ResolutionStatus string

const (
	ResolutionGenerated ResolutionStatus = "generated"
	ResolutionFailed    ResolutionStatus = "failed"
)

func (s ResolutionStatus) String() string {
	return string(s)
}

func (s ResolutionStatus) IsValid() bool {
	return s == ResolutionGenerated || s == ResolutionFailed
}

func NewResolutionStatus(s string) (ResolutionStatus, error) {
	status := ResolutionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid resolution status: %s", s)
	}
	return status, nil
}
