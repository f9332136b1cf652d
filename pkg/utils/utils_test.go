package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetValueByPath(t *testing.T) {
	data := map[string]any{
		"image":    map[string]any{"tag": "v2"},
		"replicas": 3,
	}

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"image.tag", "v2", true},
		{"replicas", 3, true},
		{"image", map[string]any{"tag": "v2"}, true},
		{"image.tag.deeper", nil, false},
		{"missing", nil, false},
		{"image.missing", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		got, found := GetValueByPath(data, tt.path)
		assert.Equal(t, tt.found, found, "path %q", tt.path)
		assert.Equal(t, tt.want, got, "path %q", tt.path)
	}
}

func TestConvertToYAMLDeterministicKeyOrder(t *testing.T) {
	data := map[string]any{"b": 2, "a": 1, "c": map[string]any{"x": true, "w": false}}

	out, err := ConvertToYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: 2\nc:\n  w: false\n  x: true\n", out)
}

func TestConvertToYAMLCustomIndent(t *testing.T) {
	out, err := ConvertToYAML(map[string]any{"a": map[string]any{"b": 1}}, YAMLOptions{Indent: 4})
	require.NoError(t, err)
	assert.Equal(t, "a:\n    b: 1\n", out)
}

func TestUnmarshalYAML(t *testing.T) {
	doc, err := UnmarshalYAML[map[string]any]([]byte("version: 2\nimage:\n  tag: v2\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"version": 2, "image": map[string]any{"tag": "v2"}}, doc)
}

func TestUnmarshalYAMLInvalid(t *testing.T) {
	_, err := UnmarshalYAML[map[string]any]([]byte("a: [unclosed"))
	assert.Error(t, err)
}
