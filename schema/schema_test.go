package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-richtext/document"
)

func TestFindSingleChildField(t *testing.T) {
	cases := []struct {
		name     string
		field    *Field
		wantNil  bool
		wantKind FieldKind
		wantPath document.PropPath
	}{
		{
			name:    "no eligible fields",
			field:   Object(map[string]*Field{"title": Scalar("Title")}),
			wantNil: true,
		},
		{
			name:     "direct child",
			field:    Object(map[string]*Field{"title": Scalar("Title"), "body": Child(ChildBlock)}),
			wantKind: KindChild,
			wantPath: document.PropPath{"body"},
		},
		{
			name: "nested child",
			field: Object(map[string]*Field{
				"content": Object(map[string]*Field{"text": Child(ChildInline)}),
			}),
			wantKind: KindChild,
			wantPath: document.PropPath{"content", "text"},
		},
		{
			name:     "array with child tag",
			field:    Object(map[string]*Field{"rows": Array(Object(map[string]*Field{"label": Scalar("")}), "row")}),
			wantKind: KindArray,
			wantPath: document.PropPath{"rows"},
		},
		{
			name:    "array without child tag",
			field:   Object(map[string]*Field{"rows": Array(Child(ChildBlock), "")}),
			wantNil: true,
		},
		{
			name: "conditional disables shorthand",
			field: Object(map[string]*Field{
				"body":    Child(ChildBlock),
				"variant": Conditional(Scalar(""), map[string]*Field{"a": Scalar("")}),
			}),
			wantNil: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FindSingleChildField(tc.field)
			if err != nil {
				t.Fatalf("FindSingleChildField() error = %v", err)
			}
			if tc.wantNil {
				if got != nil {
					t.Fatalf("expected no field, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a field")
			}
			if got.Kind != tc.wantKind {
				t.Fatalf("expected kind %q, got %q", tc.wantKind, got.Kind)
			}
			if !got.RelativePath.Equal(tc.wantPath) {
				t.Fatalf("expected path %v, got %v", tc.wantPath, got.RelativePath)
			}
		})
	}
}

func TestFindSingleChildFieldArrayElementChild(t *testing.T) {
	field := Object(map[string]*Field{
		"items": Array(Object(map[string]*Field{
			"title":   Scalar("Title"),
			"content": Child(ChildInline),
		}), "item"),
	})

	got, err := FindSingleChildField(field)
	if err != nil {
		t.Fatalf("FindSingleChildField() error = %v", err)
	}
	if got.AsChildTag != "item" {
		t.Fatalf("expected item tag, got %q", got.AsChildTag)
	}
	if got.Child == nil {
		t.Fatal("expected nested child field")
	}
	if !got.Child.RelativePath.Equal(document.PropPath{"content"}) {
		t.Fatalf("expected element-relative path, got %v", got.Child.RelativePath)
	}
	if got.Child.PropType() != document.TypeComponentInlineProp {
		t.Fatalf("expected inline prop type, got %q", got.Child.PropType())
	}
}

func TestFindSingleChildFieldAmbiguous(t *testing.T) {
	cases := map[string]*Field{
		"two children": Object(map[string]*Field{
			"a": Child(ChildBlock),
			"b": Child(ChildBlock),
		}),
		"child and array": Object(map[string]*Field{
			"a":    Child(ChildBlock),
			"rows": Array(Scalar(""), "row"),
		}),
		"element with two children": Object(map[string]*Field{
			"rows": Array(Object(map[string]*Field{
				"a": Child(ChildBlock),
				"b": Child(ChildInline),
			}), "row"),
		}),
	}

	for name, field := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FindSingleChildField(field)
			if !errors.Is(err, ErrAmbiguousChildField) {
				t.Fatalf("expected ErrAmbiguousChildField, got %v", err)
			}
		})
	}
}

func TestComponentsLookupSkipsReservedTags(t *testing.T) {
	components := Components{
		"hero":   {Name: "hero"},
		"layout": {Name: "layout"},
	}

	if _, ok := components.Component("hero"); !ok {
		t.Fatal("expected hero to resolve")
	}
	if _, ok := components.Component("layout"); ok {
		t.Fatal("expected reserved tag to be ignored")
	}
	if _, ok := Components(nil).Component("hero"); ok {
		t.Fatal("expected nil registry to miss")
	}
}

func TestDecodeComponents(t *testing.T) {
	input := `[
		{"name": "table", "label": "Table", "schema": {
			"caption": {"kind": "form"},
			"rows": {"kind": "array", "asChildTag": "row", "element": {"kind": "object", "fields": {
				"cells": {"kind": "child"}
			}}}
		}}
	]`

	components, err := DecodeComponents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeComponents() error = %v", err)
	}
	if len(components) != 1 {
		t.Fatalf("expected one component, got %d", len(components))
	}
	table := components[0]
	if table.Schema["caption"].Kind != KindScalar {
		t.Fatalf("expected form alias to decode as scalar, got %q", table.Schema["caption"].Kind)
	}
	cells := table.Schema["rows"].Element.Fields["cells"]
	if cells.ChildKind != ChildBlock {
		t.Fatalf("expected default block child kind, got %q", cells.ChildKind)
	}

	path, err := FindSingleChildField(table.Root())
	if err != nil || path == nil {
		t.Fatalf("expected single child field, got %v, %v", path, err)
	}
	if path.Child == nil || path.Child.PropType() != document.TypeComponentBlockProp {
		t.Fatalf("expected nested block prop, got %+v", path.Child)
	}
}

func TestDecodeComponentsRejectsUnknownKinds(t *testing.T) {
	_, err := DecodeComponents(strings.NewReader(`[{"name":"x","schema":{"a":{"kind":"widget"}}}]`))
	if !errors.Is(err, ErrUnknownFieldKind) {
		t.Fatalf("expected ErrUnknownFieldKind, got %v", err)
	}

	_, err = DecodeComponents(strings.NewReader(`[{"name":"x","schema":{"a":{"kind":"child","childKind":"table"}}}]`))
	if !errors.Is(err, ErrUnknownChildKind) {
		t.Fatalf("expected ErrUnknownChildKind, got %v", err)
	}
}
