// Package mutation runs a single state-changing call and reports its lifecycle.
//
// A Mutation wraps one function. Each Do emits Pending, then exactly one of
// Success or Error, then runs the matching callback once and OnSettled once.
// Nothing is retried; a failed call stays failed until the caller runs Do again.
//
//	m := mutation.New(svc.Users.Signup,
//	    mutation.OnSuccess(func(ctx context.Context, res apiclient.Result, _ services.SignupParams) {
//	        // notify, navigate
//	    }),
//	    mutation.OnError[services.SignupParams, apiclient.Result](func(ctx context.Context, err error, _ services.SignupParams) {
//	        toast.Error(ctx, err.Error())
//	    }),
//	)
//	state := m.Do(ctx, params)
package mutation

import (
	"context"
	"fmt"
)

// Status is the lifecycle phase of a mutation.
type Status int

const (
	Idle Status = iota
	Pending
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is a snapshot of one Do call. Data is set only on Success, Err only on Error.
type State[T any] struct {
	Data   T
	Err    error
	Status Status
}

func (s State[T]) IsPending() bool { return s.Status == Pending }
func (s State[T]) IsSuccess() bool { return s.Status == Success }
func (s State[T]) IsError() bool   { return s.Status == Error }

// Func is the wrapped call.
type Func[P, T any] func(ctx context.Context, params P) (T, error)

// Mutation is immutable after New and safe for concurrent Do calls.
type Mutation[P, T any] struct {
	fn        Func[P, T]
	onSuccess []func(context.Context, T, P)
	onError   []func(context.Context, error, P)
	onSettled []func(context.Context, State[T], P)
	observers []func(State[T])
}

// Option configures a Mutation.
type Option[P, T any] func(*Mutation[P, T])

// OnSuccess runs after a successful call.
func OnSuccess[P, T any](fn func(ctx context.Context, data T, params P)) Option[P, T] {
	return func(m *Mutation[P, T]) {
		m.onSuccess = append(m.onSuccess, fn)
	}
}

// OnError runs after a failed call. T does not appear in fn, so callers
// pass both type arguments: OnError[P, T](fn).
func OnError[P, T any](fn func(ctx context.Context, err error, params P)) Option[P, T] {
	return func(m *Mutation[P, T]) {
		m.onError = append(m.onError, fn)
	}
}

// OnSettled runs after OnSuccess or OnError.
func OnSettled[P, T any](fn func(ctx context.Context, state State[T], params P)) Option[P, T] {
	return func(m *Mutation[P, T]) {
		m.onSettled = append(m.onSettled, fn)
	}
}

// Observe receives every state transition, Pending included.
func Observe[P, T any](fn func(State[T])) Option[P, T] {
	return func(m *Mutation[P, T]) {
		m.observers = append(m.observers, fn)
	}
}

// New wraps fn.
func New[P, T any](fn Func[P, T], opts ...Option[P, T]) *Mutation[P, T] {
	m := &Mutation[P, T]{fn: fn}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do calls the wrapped function exactly once and returns the terminal state.
// A panic in the wrapped function is reported as an Error state.
func (m *Mutation[P, T]) Do(ctx context.Context, params P) State[T] {
	m.emit(State[T]{Status: Pending})

	data, err := m.call(ctx, params)

	var st State[T]
	if err != nil {
		st = State[T]{Status: Error, Err: err}
	} else {
		st = State[T]{Status: Success, Data: data}
	}
	m.emit(st)

	if st.Status == Success {
		for _, fn := range m.onSuccess {
			fn(ctx, st.Data, params)
		}
	} else {
		for _, fn := range m.onError {
			fn(ctx, st.Err, params)
		}
	}
	for _, fn := range m.onSettled {
		fn(ctx, st, params)
	}
	return st
}

func (m *Mutation[P, T]) call(ctx context.Context, params P) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mutation: panic: %v", r)
		}
	}()
	return m.fn(ctx, params)
}

func (m *Mutation[P, T]) emit(st State[T]) {
	for _, fn := range m.observers {
		fn(st)
	}
}
