// Package testsupport loads the JSON fixtures shared by package tests.
package testsupport

import (
	"os"

	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/schema"
)

// LoadFixture returns the raw bytes of a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadMarkup decodes a markup tree fixture.
func LoadMarkup(path string) (*markup.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return markup.Decode(file)
}

// LoadComponents decodes a component definition fixture.
func LoadComponents(path string) (schema.Components, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	defs, err := schema.DecodeComponents(file)
	if err != nil {
		return nil, err
	}
	out := make(schema.Components, len(defs))
	for _, def := range defs {
		out[def.Name] = def
	}
	return out, nil
}
