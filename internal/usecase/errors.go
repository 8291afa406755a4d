package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUpstream              = errors.New("upstream failure")
	ErrReferentialGap        = errors.New("referential gap")
	ErrSyncInProgress        = errors.New("sync already in progress")
)

// UpstreamError reports a failed provider call: a transport error or an
// envelope whose success flag is not set.
type UpstreamError struct {
	Method string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream %s failed", e.Method)
	}
	return fmt.Sprintf("upstream %s failed: %v", e.Method, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// ReferentialGapError explains why a record was skipped: Missing names the
// dependency kind (league, team, player, country) and MissingKey its key.
type ReferentialGapError struct {
	Entity     string
	Key        string
	Missing    string
	MissingKey string
}

func (e *ReferentialGapError) Error() string {
	return fmt.Sprintf("%s %s skipped: %s %s not found", e.Entity, e.Key, e.Missing, e.MissingKey)
}

func (e *ReferentialGapError) Is(target error) bool { return target == ErrReferentialGap }

// Reason is the tag recorded on skipped outcomes, e.g. "missing_league".
func (e *ReferentialGapError) Reason() string {
	return "missing_" + e.Missing
}

// ValidationError rejects malformed sync or query parameters.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
