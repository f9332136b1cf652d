package utils

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const DefaultYAMLIndent = 2

type YAMLOptions struct {
	Indent int
}

// ConvertToYAML serializes data as a YAML document. The encoder is configured
// with a fixed indent so repeated runs over identical input produce
// byte-identical output.
func ConvertToYAML(data any, opts ...YAMLOptions) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)

	indent := DefaultYAMLIndent
	if len(opts) > 0 && opts[0].Indent > 0 {
		indent = opts[0].Indent
	}
	encoder.SetIndent(indent)

	if err := encoder.Encode(data); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UnmarshalYAML unmarshals YAML into a Go type.
func UnmarshalYAML[T any](input []byte) (T, error) {
	var out T
	if err := yaml.Unmarshal(input, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
