package model

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates that a mandatory input source cannot be read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch indicates that a required join key is absent from a loaded source.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrOptionalSourceMissing indicates that the line score source is absent or unusable.
	ErrOptionalSourceMissing = errors.New("optional source missing")
	// ErrPersistenceFailure indicates that writing an output artifact failed.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Pipeline stage names used in StageError.
const (
	StageLoad    = "load"
	StagePersist = "persist"
)

// StageError reports which stage and which source or artifact failed.
type StageError struct {
	Stage  string
	Source string
	Err    error
}

// NewStageError wraps err with the sentinel kind for the given stage and source.
func NewStageError(stage, source string, kind, err error) *StageError {
	if err == nil {
		return &StageError{Stage: stage, Source: source, Err: kind}
	}
	return &StageError{Stage: stage, Source: source, Err: fmt.Errorf("%w: %w", kind, err)}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
