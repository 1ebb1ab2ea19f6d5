package convertcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	convertFileMessageType      = "richtext.convert.file"
	convertDirectoryMessageType = "richtext.convert.directory"
)

var supportedFormats = []any{"", "markup", "json", "markdoc", "markdown", "md"}

// ConvertFileCommand converts one source file and writes the editor document
// as JSON.
type ConvertFileCommand struct {
	// Path of the source file.
	Path string `json:"path"`
	// Format overrides detection from the file extension.
	Format string `json:"format,omitempty"`
}

// Type implements command.Message.
func (ConvertFileCommand) Type() string { return convertFileMessageType }

// Validate ensures a path is present and the format is known.
func (cmd ConvertFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank(
			"richtext.convert.file.path_required", "path is required",
		))),
		validation.Field(&cmd.Format, validation.By(func(value any) error {
			format, _ := value.(string)
			return validation.In(supportedFormats...).
				ErrorObject(validation.NewError("richtext.convert.file.format_invalid", "format must be markup or markdown")).
				Validate(strings.ToLower(strings.TrimSpace(format)))
		})),
	)
}

// ConvertDirectoryCommand converts every markdown file under Directory.
type ConvertDirectoryCommand struct {
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ConvertDirectoryCommand) Type() string { return convertDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ConvertDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank(
			"richtext.convert.directory.directory_required", "directory is required",
		))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if text, _ := value.(string); strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
