package result

import (
	"errors"
	"fmt"
)

// ErrUnset is what an uninitialised Result carries when it is matched.
var ErrUnset = errors.New("result not set")

type Kind int

const (
	KindSuccess Kind = iota + 1
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unset"
	}
}

// ResponseStatus is the status object a server sends back with a non-success response.
type ResponseStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s ResponseStatus) String() string {
	return fmt.Sprintf("ResponseStatus{code=%d, message='%s'}", s.Code, s.Message)
}

// Result holds exactly one of a decoded value, a server warning or a fault.
// Build it with Success, Warning or Error and read it with Match or Fold.
type Result[T any] struct {
	kind   Kind
	value  T
	status ResponseStatus
	err    error
}

func Success[T any](value T) Result[T] {
	return Result[T]{kind: KindSuccess, value: value}
}

func Warning[T any](status ResponseStatus) Result[T] {
	return Result[T]{kind: KindWarning, status: status}
}

func Error[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnset
	}
	return Result[T]{kind: KindError, err: err}
}

// Kind reports the active variant. Use it for logging; branch with Match.
func (r Result[T]) Kind() Kind {
	if r.kind == 0 {
		return KindError
	}
	return r.kind
}

// Match calls exactly one of the handlers. All three are required.
func (r Result[T]) Match(onSuccess func(T), onWarning func(ResponseStatus), onError func(error)) {
	switch r.kind {
	case KindSuccess:
		onSuccess(r.value)
	case KindWarning:
		onWarning(r.status)
	case KindError:
		onError(r.err)
	default:
		onError(ErrUnset)
	}
}

// Fold maps the active variant to a value of type R.
func Fold[T, R any](r Result[T], onSuccess func(T) R, onWarning func(ResponseStatus) R, onError func(error) R) R {
	var out R
	r.Match(
		func(v T) { out = onSuccess(v) },
		func(s ResponseStatus) { out = onWarning(s) },
		func(err error) { out = onError(err) },
	)
	return out
}

func (r Result[T]) String() string {
	return Fold(r,
		func(v T) string { return fmt.Sprintf("Success{%v}", v) },
		func(s ResponseStatus) string { return fmt.Sprintf("Warning{%s}", s) },
		func(err error) string { return fmt.Sprintf("Error{%v}", err) },
	)
}
