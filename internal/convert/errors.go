package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-richtext/markup"
)

var (
	// ErrUnknownNodeKind is returned for input nodes with no inline form.
	ErrUnknownNodeKind = errors.New("convert: unknown node kind")
	// ErrUnknownTag is returned for block tags that are neither reserved nor registered.
	ErrUnknownTag = errors.New("convert: unknown tag")
	// ErrTagMismatch is returned when an array routed child is not the expected tag.
	ErrTagMismatch = errors.New("convert: tag mismatch")
	// ErrPropPathUnreachable is returned when routed array values cannot be
	// written into the props object.
	ErrPropPathUnreachable = errors.New("convert: prop path unreachable")
	// ErrPropsInvalid is returned when the props validator rejects a component.
	ErrPropsInvalid = errors.New("convert: props invalid")
)

// Error describes a failed conversion step. Path locates the offending input
// node, e.g. "$.children[2].children[0]". Kind and Tag describe the node
// that was found; Expected is set for tag mismatches.
type Error struct {
	Path     string
	Kind     markup.Kind
	Tag      string
	Expected string
	Err      error
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var msg string
	switch {
	case errors.Is(e.Err, ErrTagMismatch):
		if e.Tag != "" {
			msg = fmt.Sprintf("expected tag %s, found tag: %s", e.Expected, e.Tag)
		} else {
			msg = fmt.Sprintf("expected tag %s, found type: %s", e.Expected, e.Kind)
		}
	case errors.Is(e.Err, ErrUnknownTag):
		msg = "unknown tag: " + e.Tag
	case errors.Is(e.Err, ErrUnknownNodeKind):
		msg = "unknown inline node type: " + string(e.Kind)
		if e.Tag != "" {
			msg += " (tag " + e.Tag + ")"
		}
	default:
		msg = strings.TrimPrefix(e.Err.Error(), "convert: ")
		if e.Tag != "" {
			msg += " for " + e.Tag
		}
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return "convert: " + msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// location is the path of the input node being converted.
type location string

const rootLocation location = "$"

func (l location) child(index int) location {
	return location(fmt.Sprintf("%s.children[%d]", l, index))
}

func nodeError(err error, node *markup.Node, at location) *Error {
	out := &Error{Path: string(at), Err: err}
	if node != nil {
		out.Kind = node.Type
		out.Tag = node.Tag
	}
	return out
}
