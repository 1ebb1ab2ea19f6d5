package markdown_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-richtext/internal/markdown"
)

func testFS() fstest.MapFS {
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return fstest.MapFS{
		"docs/a.md":        {Data: []byte("---\ntitle: A\n---\nalpha\n"), ModTime: modified},
		"docs/b.md":        {Data: []byte("beta\n"), ModTime: modified},
		"docs/notes.txt":   {Data: []byte("ignored\n"), ModTime: modified},
		"docs/nested/c.md": {Data: []byte("gamma\n"), ModTime: modified},
	}
}

func TestLoader_LoadFile(t *testing.T) {
	loader := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{})

	file, err := loader.LoadFile(context.Background(), "docs/a.md")
	require.NoError(t, err)

	assert.Equal(t, "docs/a.md", file.Path)
	assert.Len(t, file.Checksum, 64)
	assert.Equal(t, 2024, file.Modified.Year())
	assert.Equal(t, "A", file.Source.FrontMatter["title"])
	assert.Equal(t, "alpha", textOf(file.Source.Tree))
}

func TestLoader_LoadFileResolvesAbsolutePaths(t *testing.T) {
	loader := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{BasePath: "/content"})

	file, err := loader.LoadFile(context.Background(), "/content/docs/b.md")
	require.NoError(t, err)
	assert.Equal(t, "docs/b.md", file.Path)
}

func TestLoader_RejectsPathsOutsideTheFS(t *testing.T) {
	loader := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{})

	_, err := loader.LoadFile(context.Background(), "/abs/a.md")
	assert.Error(t, err)

	_, err = loader.LoadFile(context.Background(), "../a.md")
	assert.Error(t, err)

	_, err = loader.LoadFile(context.Background(), "docs/missing.md")
	assert.Error(t, err)
}

func TestLoader_LoadDirectory(t *testing.T) {
	ctx := context.Background()

	flat, err := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{}).LoadDirectory(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, flat, 2)
	assert.Equal(t, "docs/a.md", flat[0].Path)
	assert.Equal(t, "docs/b.md", flat[1].Path)

	deep, err := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{Recursive: true}).LoadDirectory(ctx, "docs")
	require.NoError(t, err)
	require.Len(t, deep, 3)
	assert.Equal(t, "docs/nested/c.md", deep[2].Path)
}

func TestLoader_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{}).LoadDirectory(ctx, "docs")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_KeepFrontMatter(t *testing.T) {
	loader := markdown.NewLoader(testFS(), nil, markdown.LoaderConfig{KeepFrontMatter: true})

	file, err := loader.LoadFile(context.Background(), "docs/a.md")
	require.NoError(t, err)

	assert.Empty(t, file.Source.FrontMatter)
	assert.Contains(t, string(file.Source.Body), "title: A")
}
