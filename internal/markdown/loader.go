package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LoaderConfig configures how markdown files are discovered.
type LoaderConfig struct {
	// BasePath is the directory absolute paths are resolved against.
	BasePath string
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// KeepFrontMatter parses a leading front matter block as markdown.
	KeepFrontMatter bool
}

// File is a loaded and parsed markdown file.
type File struct {
	Path     string
	Checksum string
	Modified time.Time
	Source   *Source
}

// Loader reads markdown files from a filesystem and parses them.
type Loader struct {
	fs        fs.FS
	parser    *Parser
	basePath  string
	pattern   string
	recursive bool
	keepMeta  bool
}

// NewLoader constructs a Loader. A nil parser uses the default extensions.
func NewLoader(filesystem fs.FS, parser *Parser, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	if parser == nil {
		parser = NewParser(Options{}, nil)
	}

	basePath := ""
	if strings.TrimSpace(cfg.BasePath) != "" {
		basePath = filepath.Clean(cfg.BasePath)
	}

	return &Loader{
		fs:        filesystem,
		parser:    parser,
		basePath:  basePath,
		pattern:   filepath.ToSlash(pattern),
		recursive: cfg.Recursive,
		keepMeta:  cfg.KeepFrontMatter,
	}
}

// LoadFile reads and parses a single markdown file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	var source *Source
	if l.keepMeta {
		source = &Source{FrontMatter: map[string]any{}, Body: data, Tree: l.parser.Parse(data)}
	} else if source, err = l.parser.ParseDocument(data); err != nil {
		return nil, fmt.Errorf("markdown loader parse %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)
	return &File{
		Path:     rel,
		Checksum: hex.EncodeToString(sum[:]),
		Modified: info.ModTime(),
		Source:   source,
	}, nil
}

// LoadDirectory parses every file under dir matching the pattern, ordered
// by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}

	var files []*File
	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(path) {
			return nil
		}

		file, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (l *Loader) matches(path string) bool {
	pattern := strings.ReplaceAll(l.pattern, "**/", "")
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	return err == nil && match
}

// makeRelative maps path onto the fs.FS namespace, which is slash separated
// and never rooted.
func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		if l.basePath == "" {
			return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
		}
		rel, err := filepath.Rel(l.basePath, clean)
		if err != nil {
			return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
		}
		clean = rel
	}
	clean = filepath.ToSlash(clean)
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("markdown loader: path %s escapes base path", path)
	}
	return clean, nil
}
