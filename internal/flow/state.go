// Package flow implements the request lifecycle shared by the weather,
// nutrition and menu lookups: Idle, then Loading, then Success or Failed.
package flow

import "tasterover/internal/failure"

// Status is the variant tag of a State.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of one flow. Result is meaningful only for Success;
// Kind, Message and Err only for Failed.
type State[T any] struct {
	Status  Status
	Result  T
	Kind    failure.Kind
	Message string // what the user sees
	Err     error  // underlying cause, for logs
}

func (s State[T]) IsIdle() bool    { return s.Status == Idle }
func (s State[T]) IsLoading() bool { return s.Status == Loading }
func (s State[T]) IsSuccess() bool { return s.Status == Success }
func (s State[T]) IsFailed() bool  { return s.Status == Failed }
