package document

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON emits the editor representation of the node.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Type == "" {
		m := make(map[string]any, 2+len(markNames))
		m["text"] = n.Text
		for _, name := range n.Marks.Names() {
			m[name] = true
		}
		if n.Href != "" {
			m["href"] = n.Href
		}
		return json.Marshal(m)
	}

	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	m := map[string]any{
		"type":     n.Type,
		"children": children,
	}
	switch n.Type {
	case TypeHeading:
		m["level"] = n.Level
	case TypeCode:
		if n.Language != "" {
			m["language"] = n.Language
		}
	case TypeLayout:
		m["layout"] = n.Layout
	case TypeComponentBlock:
		m["component"] = n.Component
		props := n.Props
		if props == nil {
			props = map[string]any{}
		}
		m["props"] = props
	}
	if n.PropPath != nil {
		m["propPath"] = n.PropPath
	}
	return json.Marshal(m)
}

type rawNode struct {
	Type      Type           `json:"type"`
	Text      *string        `json:"text"`
	Href      string         `json:"href"`
	Level     int            `json:"level"`
	Language  string         `json:"language"`
	Layout    []any          `json:"layout"`
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	PropPath  []any          `json:"propPath"`
	Children  []*Node        `json:"children"`
}

// UnmarshalJSON reads the editor representation back into a Node.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Type == "" {
		if raw.Text == nil {
			return fmt.Errorf("document: node has neither type nor text")
		}
		var flags map[string]any
		if err := json.Unmarshal(data, &flags); err != nil {
			return err
		}
		*n = Node{Text: *raw.Text, Href: raw.Href}
		for _, entry := range markNames {
			if on, ok := flags[entry.name].(bool); ok && on {
				n.Marks = n.Marks.With(entry.mark)
			}
		}
		return nil
	}

	*n = Node{
		Type:      raw.Type,
		Level:     raw.Level,
		Language:  raw.Language,
		Layout:    raw.Layout,
		Component: raw.Component,
		Props:     raw.Props,
		Children:  raw.Children,
	}
	if raw.PropPath != nil {
		path, ok := ParsePropPath(raw.PropPath)
		if !ok {
			return fmt.Errorf("document: invalid propPath %v", raw.PropPath)
		}
		n.PropPath = path
	}
	return nil
}
