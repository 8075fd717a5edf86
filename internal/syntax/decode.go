package syntax

import (
	"fmt"

	gojson "github.com/goccy/go-json"
)

// DecodeFile parses one serialized syntax tree. name overrides the
// file name recorded by the front end when non-empty, so diagnostics
// follow the path the compiler actually read.
func DecodeFile(name string, data []byte) (File, error) {
	var f File
	if err := gojson.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode syntax tree: %w", err)
	}
	if name != "" {
		f.Name = name
	}
	if f.Name == "" {
		return File{}, fmt.Errorf("decode syntax tree: file has no name")
	}
	return f, nil
}

// EncodeFile serializes a tree in the format DecodeFile accepts.
// Fixture generation and the inspect tooling use it; the compiler
// itself only decodes.
func EncodeFile(f File) ([]byte, error) {
	data, err := gojson.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode syntax tree: %w", err)
	}
	return data, nil
}
