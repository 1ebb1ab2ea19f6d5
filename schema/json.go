package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnknownFieldKind = errors.New("schema: unknown field kind")
	ErrUnknownChildKind = errors.New("schema: unknown child kind")
)

// kindAliases maps alternate spellings accepted in definition files.
var kindAliases = map[string]FieldKind{
	"form": KindScalar,
}

type fieldJSON Field

// UnmarshalJSON decodes a field definition, accepting "form" as an alias of
// "scalar" and defaulting child fields to block content.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if alias, ok := kindAliases[string(raw.Kind)]; ok {
		raw.Kind = alias
	}
	switch raw.Kind {
	case KindScalar, KindObject, KindArray, KindConditional:
	case KindChild:
		switch raw.ChildKind {
		case "":
			raw.ChildKind = ChildBlock
		case ChildBlock, ChildInline:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownChildKind, raw.ChildKind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFieldKind, raw.Kind)
	}
	*f = Field(raw)
	return nil
}

// DecodeComponents reads a JSON array of component definitions.
func DecodeComponents(r io.Reader) ([]*Component, error) {
	var out []*Component
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("schema: decode components: %w", err)
	}
	return out, nil
}
