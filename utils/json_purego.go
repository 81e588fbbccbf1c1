//go:build purego

package utils

import (
	"encoding/json" //nolint:depguard
	"io"
)

type JSONDecoder = json.Decoder

func MarshalJSON(val any) ([]byte, error) {
	return json.Marshal(val)
}

func MarshalJSONIndent(val any, indent string) ([]byte, error) {
	return json.MarshalIndent(val, "", indent)
}

func UnmarshalJSON(data []byte, val any) error {
	return json.Unmarshal(data, val)
}

// NewJSONDecoder returns a decoder that rejects fields it does not know about.
func NewJSONDecoder(reader io.Reader) *JSONDecoder {
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	return dec
}
