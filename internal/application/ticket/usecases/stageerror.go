package usecases

import (
	stderrors "errors"
	"fmt"

	"github.com/helpdesk-ai/helpdesk/internal/shared/errors"
)

// Stage names the step of the intake pipeline that stopped a submission.
type Stage string

const (
	StageValidate Stage = "validate"
	StageOCR      Stage = "ocr"
	StageClassify Stage = "classify"
	StageGenerate Stage = "generate"
	StagePersist  Stage = "persist"
)

func (s Stage) String() string {
	return string(s)
}

// StageError is the terminal error of a failed submission. Cause carries the
// client-facing error so handlers can render every stage the same way.
type StageError struct {
	Stage Stage
	Cause *errors.AppError
}

func newStageError(stage Stage, cause *errors.AppError) *StageError {
	return &StageError{Stage: stage, Cause: cause}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %s", e.Stage, e.Cause.Error())
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// StageOf reports the stage at which err stopped a submission.
func StageOf(err error) (Stage, bool) {
	var stageErr *StageError
	if stderrors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
