// Package resource provides the tri-state envelope every asynchronous data
// operation in Vastra resolves to: Loading, Success(value) or Error(message).
//
// Repositories return a terminal Resource (or a plain error that the caller
// wraps); streaming operations emit exactly one Loading before any terminal
// state. View-models project Resources into screen state.
//
// Usage:
//
//	res := resource.Success(products)
//	if res.IsError() {
//	    log.Warn("load failed", "error", res.Message)
//	}
package resource

import "encoding/json"

// Status discriminates the three envelope states.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Resource carries the outcome of an asynchronous operation.
// The zero value is Loading.
type Resource[T any] struct {
	Status  Status
	Value   T      // valid only when Status == StatusSuccess
	Message string // valid only when Status == StatusError
}

// Loading returns the pending state.
func Loading[T any]() Resource[T] {
	return Resource[T]{Status: StatusLoading}
}

// Success wraps a terminal successful value.
func Success[T any](v T) Resource[T] {
	return Resource[T]{Status: StatusSuccess, Value: v}
}

// Error wraps a terminal failure. The message is the provider's text,
// passed through unmodified.
func Error[T any](message string) Resource[T] {
	return Resource[T]{Status: StatusError, Message: message}
}

// Errf wraps err into a terminal failure. A nil err yields a Success with
// the zero value, so callers can write resource.Errf[T](op()) one-liners.
func Errf[T any](err error) Resource[T] {
	if err == nil {
		var zero T
		return Success(zero)
	}
	return Error[T](err.Error())
}

func (r Resource[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Resource[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Resource[T]) IsError() bool   { return r.Status == StatusError }

// Get returns the value and whether the resource is a Success.
func (r Resource[T]) Get() (T, bool) {
	return r.Value, r.Status == StatusSuccess
}

// Or returns the value on Success, otherwise fallback.
func (r Resource[T]) Or(fallback T) T {
	if r.Status == StatusSuccess {
		return r.Value
	}
	return fallback
}

// MarshalJSON renders the envelope for SSE/WS consumers:
//
//	{"status":"loading"}
//	{"status":"success","data":…}
//	{"status":"error","message":"…"}
func (r Resource[T]) MarshalJSON() ([]byte, error) {
	switch r.Status {
	case StatusSuccess:
		return json.Marshal(struct {
			Status string `json:"status"`
			Data   T      `json:"data"`
		}{"success", r.Value})
	case StatusError:
		return json.Marshal(struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}{"error", r.Message})
	default:
		return []byte(`{"status":"loading"}`), nil
	}
}

// Map converts a Resource[T] into a Resource[R], applying fn only on Success.
// Loading and Error pass through unchanged.
func Map[T, R any](r Resource[T], fn func(T) R) Resource[R] {
	switch r.Status {
	case StatusSuccess:
		return Success(fn(r.Value))
	case StatusError:
		return Error[R](r.Message)
	default:
		return Loading[R]()
	}
}
