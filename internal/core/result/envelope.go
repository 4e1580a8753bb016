// Package result provides the tri-state envelope every data-layer operation
// reports its outcome through.
package result

import (
	"encoding/json"

	"forecast.app/pkg/errors"
)

// State identifies which variant an Envelope holds
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateFailure
)

// String returns the wire name of the state
func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "loading"
	}
}

// Envelope holds exactly one of Loading, Success(value) or Failure(error).
// The zero value is Loading.
type Envelope[T any] struct {
	state State
	value T
	err   *errors.AppError
}

// Loading returns an envelope for an operation that has not settled yet
func Loading[T any]() Envelope[T] {
	return Envelope[T]{state: StateLoading}
}

// Success wraps a settled value
func Success[T any](value T) Envelope[T] {
	return Envelope[T]{state: StateSuccess, value: value}
}

// Failure wraps a classified error. Errors that are not application errors
// are classified as Unknown.
func Failure[T any](err error) Envelope[T] {
	appErr, ok := errors.As(err)
	if !ok {
		msg := "unknown failure"
		if err != nil {
			msg = err.Error()
		}
		appErr = errors.Wrap(errors.ErrorTypeUnknown, msg, err)
	}
	return Envelope[T]{state: StateFailure, err: appErr}
}

// State reports the active variant
func (e Envelope[T]) State() State {
	return e.state
}

func (e Envelope[T]) IsLoading() bool { return e.state == StateLoading }
func (e Envelope[T]) IsSuccess() bool { return e.state == StateSuccess }
func (e Envelope[T]) IsFailure() bool { return e.state == StateFailure }

// Value returns the success payload, or the zero value and false for any other variant
func (e Envelope[T]) Value() (T, bool) {
	if e.state != StateSuccess {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Err returns the failure error, or nil for any other variant
func (e Envelope[T]) Err() *errors.AppError {
	if e.state != StateFailure {
		return nil
	}
	return e.err
}

// Kind returns the failure classification, or Unknown when not a failure
func (e Envelope[T]) Kind() errors.ErrorType {
	if e.state != StateFailure {
		return errors.ErrorTypeUnknown
	}
	return e.err.Type
}

// Match calls exactly one of the handlers depending on the active variant
func Match[T, R any](e Envelope[T], onLoading func() R, onSuccess func(T) R, onFailure func(*errors.AppError) R) R {
	switch e.state {
	case StateSuccess:
		return onSuccess(e.value)
	case StateFailure:
		return onFailure(e.err)
	default:
		return onLoading()
	}
}

// Map transforms the success payload and passes the other variants through
func Map[T, R any](e Envelope[T], fn func(T) R) Envelope[R] {
	switch e.state {
	case StateSuccess:
		return Success(fn(e.value))
	case StateFailure:
		return Envelope[R]{state: StateFailure, err: e.err}
	default:
		return Loading[R]()
	}
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type envelopeBody[T any] struct {
	Status string     `json:"status"`
	Data   *T         `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

// MarshalJSON encodes the envelope as {"status":..., "data":..., "error":{...}}
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	body := envelopeBody[T]{Status: e.state.String()}
	switch e.state {
	case StateSuccess:
		v := e.value
		body.Data = &v
	case StateFailure:
		body.Error = &errorBody{Kind: e.err.Type.String(), Message: e.err.Message}
	}
	return json.Marshal(body)
}
