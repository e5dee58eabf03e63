package utils

import (
	"bytes"

	"github.com/goccy/go-json"
)

// MarshalJsonNoHTMLEspace encodes v without escaping <, > and &, the trailing newline of the encoder is removed.
func MarshalJsonNoHTMLEspace(v any) ([]byte, error) {
	return marshalJsonNoHTMLEspace(v, "", "")
}

func MarshalIndentJsonNoHTMLEspace(v any, prefix, indent string) ([]byte, error) {
	return marshalJsonNoHTMLEspace(v, prefix, indent)
}

func marshalJsonNoHTMLEspace(v any, prefix, indent string) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if prefix != "" || indent != "" {
		encoder.SetIndent(prefix, indent)
	}

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
