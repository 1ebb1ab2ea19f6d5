package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-richtext/markup"
)

// Source is a parsed markdown file.
type Source struct {
	// FrontMatter holds the decoded metadata block. It is never nil.
	FrontMatter map[string]any
	// Body is the markdown without the front matter delimiters.
	Body []byte
	// Tree is the markup tree produced from Body.
	Tree *markup.Node
}

// ParseFrontMatter splits a YAML or TOML front matter block from source.
// Sources without front matter return an empty map and the input unchanged.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return normalizeMeta(meta), body, nil
}

// ParseDocument splits the front matter and parses the remaining body.
func (p *Parser) ParseDocument(source []byte) (*Source, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	return &Source{
		FrontMatter: meta,
		Body:        body,
		Tree:        p.Parse(body),
	}, nil
}

// normalizeMeta rewrites the map[any]any values the YAML decoder produces
// for nested mappings so the metadata stays JSON encodable.
func normalizeMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for key, value := range meta {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMeta(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
