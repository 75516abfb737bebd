package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func kindOf[T any](r Result[T]) string {
	return Fold(r,
		func(T) string { return "success" },
		func(ResponseStatus) string { return "warning" },
		func(error) string { return "error" },
	)
}

func TestMatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := Success(3)
		var got int
		r.Match(
			func(v int) { got = v },
			func(ResponseStatus) { t.Fatal("warning branch called") },
			func(error) { t.Fatal("error branch called") },
		)
		require.Equal(t, 3, got)
		require.Equal(t, KindSuccess, r.Kind())
	})

	t.Run("warning", func(t *testing.T) {
		r := Warning[int](ResponseStatus{Code: 404, Message: "no sensor data"})
		var got ResponseStatus
		r.Match(
			func(int) { t.Fatal("success branch called") },
			func(s ResponseStatus) { got = s },
			func(error) { t.Fatal("error branch called") },
		)
		require.Equal(t, ResponseStatus{Code: 404, Message: "no sensor data"}, got)
		require.Equal(t, KindWarning, r.Kind())
	})

	t.Run("error", func(t *testing.T) {
		cause := errors.New("connection refused")
		r := Error[int](cause)
		var got error
		r.Match(
			func(int) { t.Fatal("success branch called") },
			func(ResponseStatus) { t.Fatal("warning branch called") },
			func(err error) { got = err },
		)
		require.ErrorIs(t, got, cause)
		require.Equal(t, KindError, r.Kind())
	})
}

func TestZeroValueIsError(t *testing.T) {
	var r Result[string]
	require.Equal(t, "error", kindOf(r))
	require.Equal(t, KindError, r.Kind())

	var got error
	r.Match(func(string) {}, func(ResponseStatus) {}, func(err error) { got = err })
	require.ErrorIs(t, got, ErrUnset)
}

func TestErrorWithNilCause(t *testing.T) {
	r := Error[int](nil)
	var got error
	r.Match(func(int) {}, func(ResponseStatus) {}, func(err error) { got = err })
	require.ErrorIs(t, got, ErrUnset)
}

func TestString(t *testing.T) {
	require.Equal(t, "Success{7}", Success(7).String())
	require.Equal(t, "Warning{ResponseStatus{code=500, message='down'}}",
		Warning[int](ResponseStatus{Code: 500, Message: "down"}).String())
	require.Equal(t, "Error{boom}", Error[int](errors.New("boom")).String())
}
