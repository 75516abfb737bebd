package config

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"

	jsoniter "github.com/json-iterator/go"
)

//go:embed resources/request_info.json
var bundledRequestInfo []byte

var ErrRequestInfo = errors.New("invalid request info")

// RequestInfo is the bundled request resource: base urls by network and default headers.
type RequestInfo struct {
	URLs    map[string]string
	Headers map[string]string
}

// LoadRequestInfo parses the request_info.json that ships inside the binary.
func LoadRequestInfo() (*RequestInfo, error) {
	return ParseRequestInfo(bundledRequestInfo)
}

func ParseRequestInfo(data []byte) (*RequestInfo, error) {
	var m map[string]map[string]string
	if err := jsoniter.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestInfo, err)
	}
	urls, ok := m["urls"]
	if !ok || len(urls) == 0 {
		return nil, fmt.Errorf("%w: missing \"urls\"", ErrRequestInfo)
	}
	headers, ok := m["headers"]
	if !ok {
		return nil, fmt.Errorf("%w: missing \"headers\"", ErrRequestInfo)
	}
	return &RequestInfo{URLs: urls, Headers: headers}, nil
}

func (r *RequestInfo) URL(key string) (string, error) {
	u, ok := r.URLs[key]
	if !ok || u == "" {
		return "", fmt.Errorf("%w: no url for key %q", ErrRequestInfo, key)
	}
	return u, nil
}

// RequestHeaders returns a copy the caller may add to.
func (r *RequestInfo) RequestHeaders() map[string]string {
	return maps.Clone(r.Headers)
}
