package weather

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/reusedev/weather-viewer/internal/modules/result"
	"github.com/stretchr/testify/require"
)

func mustSuccess(t *testing.T, r result.Result[ImagePayload]) ImagePayload {
	t.Helper()
	var got ImagePayload
	r.Match(
		func(p ImagePayload) { got = p },
		func(s result.ResponseStatus) { t.Fatalf("want success, got warning %s", s) },
		func(err error) { t.Fatalf("want success, got error %v", err) },
	)
	return got
}

func mustWarning(t *testing.T, r result.Result[ImagePayload]) result.ResponseStatus {
	t.Helper()
	var got result.ResponseStatus
	r.Match(
		func(p ImagePayload) { t.Fatalf("want warning, got success %+v", p) },
		func(s result.ResponseStatus) { got = s },
		func(err error) { t.Fatalf("want warning, got error %v", err) },
	)
	return got
}

func mustError(t *testing.T, r result.Result[ImagePayload]) error {
	t.Helper()
	var got error
	r.Match(
		func(p ImagePayload) { t.Fatalf("want error, got success %+v", p) },
		func(s result.ResponseStatus) { t.Fatalf("want error, got warning %s", s) },
		func(err error) { got = err },
	)
	require.Error(t, got)
	return got
}

func TestDecodeDayImage_Success(t *testing.T) {
	p := mustSuccess(t, DecodeDayImage(http.StatusOK, []byte(`{"data":{"recCount":3,"imageBase64":"aGVsbG8="}}`)))
	require.Equal(t, 3, p.RecordCount)
	require.Equal(t, []byte("hello"), p.ImageBytes)
}

func TestDecodeDayImage_ZeroRecordsIsSuccess(t *testing.T) {
	p := mustSuccess(t, DecodeDayImage(http.StatusOK, []byte(`{"data":{"recCount":0,"imageBase64":""}}`)))
	require.Zero(t, p.RecordCount)
	require.Empty(t, p.ImageBytes)
}

func TestDecodeDayImage_Warning(t *testing.T) {
	s := mustWarning(t, DecodeDayImage(http.StatusNotFound, []byte(`{"status":{"code":404,"message":"no sensor data"}}`)))
	require.Equal(t, result.ResponseStatus{Code: 404, Message: "no sensor data"}, s)
}

func TestDecodeDayImage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "invalid base64 alphabet", status: 200, body: `{"data":{"recCount":1,"imageBase64":"aGVs*G8="}}`},
		{name: "truncated padding", status: 200, body: `{"data":{"recCount":1,"imageBase64":"aGVsbG8"}}`},
		{name: "missing data", status: 200, body: `{}`},
		{name: "missing recCount", status: 200, body: `{"data":{"imageBase64":"aGVsbG8="}}`},
		{name: "missing imageBase64", status: 200, body: `{"data":{"recCount":3}}`},
		{name: "recCount not a number", status: 200, body: `{"data":{"recCount":"3","imageBase64":"aGVsbG8="}}`},
		{name: "negative recCount", status: 200, body: `{"data":{"recCount":-1,"imageBase64":""}}`},
		{name: "malformed json", status: 200, body: `{"data":`},
		{name: "empty body", status: 200, body: ``},
		{name: "warning without status", status: 500, body: `{"data":{"recCount":3,"imageBase64":"aGVsbG8="}}`},
		{name: "warning without code", status: 404, body: `{"status":{"message":"no sensor data"}}`},
		{name: "html error page", status: 502, body: `<html>bad gateway</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustError(t, DecodeDayImage(tt.status, []byte(tt.body)))
			require.ErrorIs(t, err, ErrEnvelope)
		})
	}
}

func TestParseResponse_TransportError(t *testing.T) {
	err := mustError(t, ParseResponse(0, nil, context.DeadlineExceeded))
	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseResponse_TransportErrorWinsOverBody(t *testing.T) {
	refused := errors.New("connect: connection refused")
	err := mustError(t, ParseResponse(http.StatusOK, []byte(`{"data":{"recCount":3,"imageBase64":"aGVsbG8="}}`), refused))
	require.ErrorIs(t, err, refused)
}
