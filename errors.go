package richtext

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-richtext/internal/components"
	"github.com/goliatone/go-richtext/internal/convert"
	"github.com/goliatone/go-richtext/internal/validation"
	"github.com/goliatone/go-richtext/schema"
)

var (
	ErrUnknownNodeKind     = convert.ErrUnknownNodeKind
	ErrUnknownTag          = convert.ErrUnknownTag
	ErrTagMismatch         = convert.ErrTagMismatch
	ErrPropPathUnreachable = convert.ErrPropPathUnreachable
	ErrPropsInvalid        = convert.ErrPropsInvalid
	ErrAmbiguousChildField = schema.ErrAmbiguousChildField
	ErrDuplicateComponent  = components.ErrDuplicateComponent
	ErrInvalidComponent    = components.ErrInvalidComponent
	ErrSchemaValidation    = validation.ErrSchemaValidation
)

// ErrMarkdownDisabled is returned by markdown conversions when the markdown
// front-end is not enabled in the configuration.
var ErrMarkdownDisabled = errors.New("richtext: markdown conversion is disabled")

// ErrUnknownFormat reports a source format other than markup or markdown.
var ErrUnknownFormat = errors.New("richtext: unknown source format")

const (
	codeConfigInvalid     = "RICHTEXT_CONFIG_INVALID"
	codeComponentInvalid  = "RICHTEXT_COMPONENT_INVALID"
	codeUnknownNode       = "RICHTEXT_UNKNOWN_NODE"
	codeUnknownTag        = "RICHTEXT_UNKNOWN_TAG"
	codeTagMismatch       = "RICHTEXT_TAG_MISMATCH"
	codePropPath          = "RICHTEXT_PROP_PATH"
	codePropsInvalid      = "RICHTEXT_PROPS_INVALID"
	codeDecodeFailed      = "RICHTEXT_DECODE_FAILED"
	codeMarkdownFailed    = "RICHTEXT_MARKDOWN_FAILED"
	codeMarkdownDisabled  = "RICHTEXT_MARKDOWN_DISABLED"
	codeConversionAborted = "RICHTEXT_CONVERSION_ABORTED"
	codeConversionFailed  = "RICHTEXT_CONVERSION_FAILED"
)

func wrapValidation(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).WithTextCode(code)
}

// wrapConvertError categorises converter failures by their sentinel.
func wrapConvertError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion aborted").
			WithTextCode(codeConversionAborted)
	case errors.Is(err, ErrUnknownNodeKind):
		return wrapValidation(err, codeUnknownNode, "unsupported markup node")
	case errors.Is(err, ErrUnknownTag):
		return wrapValidation(err, codeUnknownTag, "unknown markup tag")
	case errors.Is(err, ErrTagMismatch):
		return wrapValidation(err, codeTagMismatch, "unexpected child tag")
	case errors.Is(err, ErrPropPathUnreachable):
		return wrapValidation(err, codePropPath, "prop path cannot be written")
	case errors.Is(err, ErrPropsInvalid):
		return wrapValidation(err, codePropsInvalid, "component props are invalid")
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "conversion failed").
			WithTextCode(codeConversionFailed)
	}
}
