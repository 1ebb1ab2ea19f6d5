package components

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-richtext/markup"
	"github.com/goliatone/go-richtext/schema"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateComponent checks that the component can be addressed as a tag:
// the name is present, tag shaped and not one of the reserved tags.
func ValidateComponent(component *schema.Component) error {
	if component == nil {
		return fmt.Errorf("%w: component is nil", ErrInvalidComponent)
	}
	err := validation.ValidateStruct(component,
		validation.Field(&component.Name,
			validation.Required,
			validation.Match(tagNamePattern).Error("name must start with a letter and contain only letters, digits, '-' or '_'"),
			validation.By(notReserved),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	return nil
}

func notReserved(value any) error {
	name, _ := value.(string)
	if markup.IsReservedTag(name) {
		return validation.NewError("richtext.components.name_reserved", fmt.Sprintf("%q is a reserved tag", name))
	}
	return nil
}
