package tools

import (
	"bytes"
	"os"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads path and drops a leading UTF-8 BOM, which some editors put in
// front of saved response json.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

func PanicOnError[T any](v T, e error) T {
	if e != nil {
		panic(e)
	}
	return v
}
