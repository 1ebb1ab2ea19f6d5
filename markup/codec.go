package markup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrMissingType    = errors.New("markup: node type missing")
	ErrExpectedObject = errors.New("markup: expected object")
	ErrExpectedArray  = errors.New("markup: expected array")
)

// Error records where in the tree a decode or encode step failed.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("markup: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("markup: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Op: op, Path: path, Err: err}
}

// Decode reads a JSON encoded syntax tree. Numbers are kept as json.Number
// so integral attributes survive without float conversion. Keys other than
// type, tag, attributes and children are ignored.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, wrap("decode", "", err)
	}
	return decodeNode(raw, "$")
}

// DecodeString is Decode over an in-memory document.
func DecodeString(input string) (*Node, error) {
	return Decode(strings.NewReader(input))
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

func decodeNode(raw any, path string) (*Node, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, wrap("decode", path, ErrExpectedObject)
	}

	kind, _ := obj["type"].(string)
	if kind == "" {
		return nil, wrap("decode", path, ErrMissingType)
	}
	node := &Node{Type: Kind(kind)}

	if tag, ok := obj["tag"].(string); ok {
		node.Tag = tag
	}

	if rawAttrs, ok := obj["attributes"]; ok && rawAttrs != nil {
		attrs, ok := rawAttrs.(map[string]any)
		if !ok {
			return nil, wrap("decode", path+".attributes", ErrExpectedObject)
		}
		node.Attributes = attrs
	}

	rawChildren, ok := obj["children"]
	if !ok || rawChildren == nil {
		if node.Type != KindText {
			node.Children = []*Node{}
		}
		return node, nil
	}
	list, ok := rawChildren.([]any)
	if !ok {
		return nil, wrap("decode", path+".children", ErrExpectedArray)
	}
	node.Children = make([]*Node, 0, len(list))
	for i, entry := range list {
		child, err := decodeNode(entry, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// Encode writes the tree as JSON without HTML escaping.
func Encode(w io.Writer, root *Node) error {
	if root == nil {
		return wrap("encode", "$", ErrMissingType)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(root); err != nil {
		return wrap("encode", "$", err)
	}
	return nil
}
