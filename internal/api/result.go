package api

// Result is the outcome of an API call: either Ok with a value or Err with
// an *Error. Expected failures are always reported this way, never panicked.
type Result[T any] struct {
	value T
	err   *Error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps an error. A nil error is not allowed.
func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = &Error{Kind: KindDecode, Detail: "missing error"}
	}
	return Result[T]{err: err}
}

// IsOk reports whether the call succeeded.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the success value, or the zero value on error.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error variant, or nil on success.
func (r Result[T]) Err() *Error {
	return r.err
}

// Unwrap converts the result to the usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
