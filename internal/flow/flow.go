package flow

import (
	"context"
	"errors"
	"sync"

	"tasterover/internal/failure"
	"tasterover/internal/logging"
)

// Config describes one concrete flow.
type Config[Req, T any] struct {
	// Name labels the flow in logs ("weather", "nutrition", "menu").
	Name string

	// Validate normalizes the request or rejects it with a *ValidationError.
	// Nil accepts every request as-is.
	Validate func(Req) (Req, error)

	// Fetch performs the single outbound request.
	Fetch func(ctx context.Context, req Req) (T, error)

	// AdminMessage replaces the error text of quota failures.
	AdminMessage string
}

// Call performs the request started by Trigger and settles the flow.
// It returns the state the flow holds afterwards.
type Call[T any] func(ctx context.Context) State[T]

// Flow owns the state of one request/response lifecycle. All methods are
// safe for concurrent use.
type Flow[Req, T any] struct {
	cfg Config[Req, T]

	mu    sync.Mutex
	state State[T]
	req   Req
	gen   uint64 // bumped by Trigger and Reset; stale calls are dropped
}

// New creates an Idle flow.
func New[Req, T any](cfg Config[Req, T]) *Flow[Req, T] {
	return &Flow[Req, T]{cfg: cfg}
}

// Name returns the configured flow name.
func (f *Flow[Req, T]) Name() string {
	return f.cfg.Name
}

// State returns a snapshot of the current state.
func (f *Flow[Req, T]) State() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Request returns the last accepted request; the zero value after Reset.
func (f *Flow[Req, T]) Request() Req {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.req
}

// Trigger validates req and moves the flow to Loading, dropping any previous
// result. The returned Call must be run to issue the request.
//
// Invalid input moves the flow straight to a generic Failed state and returns
// the *ValidationError with a nil Call. While Loading, Trigger returns
// ErrInFlight and leaves the flow untouched.
func (f *Flow[Req, T]) Trigger(req Req) (Call[T], error) {
	log := logging.Get(logging.CategoryFlow)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Status == Loading {
		log.Debug("%s: trigger ignored, request in flight", f.cfg.Name)
		return nil, ErrInFlight
	}

	if f.cfg.Validate != nil {
		normalized, err := f.cfg.Validate(req)
		if err != nil {
			f.gen++
			f.state = State[T]{
				Status:  Failed,
				Kind:    failure.Generic,
				Message: err.Error(),
				Err:     err,
			}
			log.Info("%s: rejected input: %v", f.cfg.Name, err)
			return nil, err
		}
		req = normalized
	}

	f.gen++
	gen := f.gen
	f.req = req
	f.state = State[T]{Status: Loading}
	log.Info("%s: loading", f.cfg.Name)

	return func(ctx context.Context) State[T] {
		res, err := f.cfg.Fetch(ctx, req)
		return f.settle(gen, res, err)
	}, nil
}

// Run triggers and waits for the request. Errors from Trigger are returned
// alongside the state they left behind.
func (f *Flow[Req, T]) Run(ctx context.Context, req Req) (State[T], error) {
	call, err := f.Trigger(req)
	if err != nil {
		return f.State(), err
	}
	return call(ctx), nil
}

// Reset returns the flow to Idle and forgets the last request and result.
// A call still in flight will not settle into the reset flow.
func (f *Flow[Req, T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	var zero Req
	f.gen++
	f.req = zero
	f.state = State[T]{}
}

func (f *Flow[Req, T]) settle(gen uint64, res T, err error) State[T] {
	log := logging.Get(logging.CategoryFlow)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		log.Debug("%s: dropping stale response", f.cfg.Name)
		return f.state
	}

	if err != nil {
		kind, msg := failure.Present(err.Error(), f.cfg.AdminMessage)
		f.state = State[T]{
			Status:  Failed,
			Kind:    kind,
			Message: msg,
			Err:     err,
		}
		log.Warn("%s: failed (%s): %v", f.cfg.Name, kind, err)
		return f.state
	}

	f.state = State[T]{Status: Success, Result: res}
	log.Info("%s: success", f.cfg.Name)
	return f.state
}

// IsValidation reports whether err rejected input before any request.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
