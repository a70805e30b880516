package core

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageIntake     Stage = "intake"
	StageExtraction Stage = "extraction"
	StageInvocation Stage = "invocation"
)

// ErrNoText is returned when a panel is requested before any text was extracted.
var ErrNoText = errors.New("no document text in this session; upload a document first")

// StageError tags a failure with the stage that produced it so handlers can
// report it to the user.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Wrap returns nil for a nil err.
func Wrap(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf reports the stage of err, or "" when err carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
