// Package result carries the outcome of a backend call as a value.
//
// A Result is either Ok, holding a value and optional paging metadata,
// or Err, holding a human-readable message. The zero value is Err.
package result

const unknownError = "Unknown error"

// Meta is the paging information the backend attaches to list responses.
type Meta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Result[T any] struct {
	ok      bool
	value   T
	message string
	meta    *Meta
}

func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// OkWithMeta is Ok with paging metadata. A nil meta is the same as Ok.
func OkWithMeta[T any](value T, meta *Meta) Result[T] {
	return Result[T]{ok: true, value: value, meta: meta}
}

func Err[T any](message string) Result[T] {
	if message == "" {
		message = unknownError
	}
	return Result[T]{message: message}
}

func (r Result[T]) IsOk() bool {
	return r.ok
}

// Value returns the success value, or the zero T for Err.
func (r Result[T]) Value() T {
	return r.value
}

// Message returns the failure message, or "" for Ok.
func (r Result[T]) Message() string {
	if r.ok {
		return ""
	}
	if r.message == "" {
		return unknownError
	}
	return r.message
}

func (r Result[T]) Meta() *Meta {
	return r.meta
}

func (r Result[T]) ValueOr(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// Match calls exactly one of onOk or onErr.
func (r Result[T]) Match(onOk func(T), onErr func(string)) {
	if r.ok {
		if onOk != nil {
			onOk(r.value)
		}
		return
	}
	if onErr != nil {
		onErr(r.Message())
	}
}

// Map transforms the value of an Ok result and passes Err through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.Message())
	}
	return OkWithMeta(fn(r.value), r.meta)
}
