package document

// Mark is a set of text formatting flags. A single flag is a one-element set,
// so union is idempotent: applying bold twice still yields bold once.
type Mark uint16

const (
	MarkBold Mark = 1 << iota
	MarkItalic
	MarkUnderline
	MarkStrikethrough
	MarkSubscript
	MarkSuperscript
	MarkKeyboard
	MarkCode
)

// markNames lists every flag with the JSON key the editor uses for it.
var markNames = []struct {
	mark Mark
	name string
}{
	{MarkBold, "bold"},
	{MarkItalic, "italic"},
	{MarkUnderline, "underline"},
	{MarkStrikethrough, "strikethrough"},
	{MarkSubscript, "subscript"},
	{MarkSuperscript, "superscript"},
	{MarkKeyboard, "keyboard"},
	{MarkCode, "code"},
}

// Has reports whether every flag in other is set.
func (m Mark) Has(other Mark) bool { return other != 0 && m&other == other }

// With returns the union of both sets.
func (m Mark) With(other Mark) Mark { return m | other }

// Names returns the editor keys of the set flags in a stable order.
func (m Mark) Names() []string {
	var names []string
	for _, entry := range markNames {
		if m&entry.mark != 0 {
			names = append(names, entry.name)
		}
	}
	return names
}

// String renders the set as a "+"-joined list, e.g. "bold+italic".
func (m Mark) String() string {
	names := m.Names()
	if len(names) == 0 {
		return "none"
	}
	out := names[0]
	for _, name := range names[1:] {
		out += "+" + name
	}
	return out
}

// ParseMark resolves an editor mark key.
func ParseMark(name string) (Mark, bool) {
	for _, entry := range markNames {
		if entry.name == name {
			return entry.mark, true
		}
	}
	return 0, false
}
