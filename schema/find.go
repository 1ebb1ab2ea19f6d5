package schema

import (
	"errors"
	"sort"

	"github.com/goliatone/go-richtext/document"
)

var (
	// ErrAmbiguousChildField is returned when more than one field could
	// receive a tag's bare children.
	ErrAmbiguousChildField = errors.New("schema: more than one single child field")

	errConditional = errors.New("schema: conditional field")
)

// ChildFieldPath locates the single field that receives a tag's children.
//
// For KindChild the children become one embedded prop at RelativePath. For
// KindArray every child must be an AsChildTag tag; each becomes an element
// and Child, when set, is the element's own single child field with a path
// relative to the element.
type ChildFieldPath struct {
	Kind         FieldKind
	RelativePath document.PropPath
	Field        *Field

	ChildKind ChildKind

	AsChildTag string
	Child      *ChildFieldPath
}

// PropType returns the embedded prop node type produced for a child field.
func (p *ChildFieldPath) PropType() document.Type {
	if p.ChildKind == ChildInline {
		return document.TypeComponentInlineProp
	}
	return document.TypeComponentBlockProp
}

// FindSingleChildField walks field and returns the one field eligible for
// bare-children shorthand. It returns (nil, nil) when no field qualifies or a
// conditional field is present, and ErrAmbiguousChildField when more than one
// qualifies.
func FindSingleChildField(field *Field) (*ChildFieldPath, error) {
	var found []*ChildFieldPath
	if err := collect(field, document.PropPath{}, &found); err != nil {
		if errors.Is(err, errConditional) {
			return nil, nil
		}
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, ErrAmbiguousChildField
	}
}

func collect(field *Field, path document.PropPath, found *[]*ChildFieldPath) error {
	if field == nil {
		return nil
	}
	switch field.Kind {
	case KindChild:
		kind := field.ChildKind
		if kind == "" {
			kind = ChildBlock
		}
		*found = append(*found, &ChildFieldPath{
			Kind:         KindChild,
			RelativePath: path,
			Field:        field,
			ChildKind:    kind,
		})
	case KindObject:
		keys := make([]string, 0, len(field.Fields))
		for key := range field.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := collect(field.Fields[key], path.Concat(key), found); err != nil {
				return err
			}
		}
	case KindArray:
		if field.AsChildTag == "" {
			return nil
		}
		var inner []*ChildFieldPath
		if err := collect(field.Element, document.PropPath{}, &inner); err != nil {
			return err
		}
		if len(inner) > 1 {
			return ErrAmbiguousChildField
		}
		entry := &ChildFieldPath{
			Kind:         KindArray,
			RelativePath: path,
			Field:        field,
			AsChildTag:   field.AsChildTag,
		}
		if len(inner) == 1 {
			entry.Child = inner[0]
		}
		*found = append(*found, entry)
	case KindConditional:
		return errConditional
	}
	return nil
}
