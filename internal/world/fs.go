// Package world discovers project folders on disk and reads their sketches.
package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"inopush/internal/errs"
)

// Project is a candidate folder directly under the scan root.
type Project struct {
	Name string // folder name
	Path string // folder path, joined onto the root
}

// Sketch is the source file chosen to describe a project.
type Sketch struct {
	Path string
	Code string
}

// Scanner handles project folder discovery.
type Scanner struct {
	ignore map[string]struct{}
	ext    string
	logger *zap.Logger
}

// NewScanner creates a scanner that skips names in ignore and reads files with ext.
func NewScanner(ignore map[string]struct{}, ext string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ignore == nil {
		ignore = map[string]struct{}{}
	}
	return &Scanner{ignore: ignore, ext: ext, logger: logger}
}

// ListProjects returns the direct child directories of root in lexical order.
// Non-directories, ignored names and hidden folders are left out.
func (s *Scanner) ListProjects(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list project root %s: %w", root, err)
	}

	var projects []Project
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			continue
		}
		if _, skip := s.ignore[name]; skip {
			s.logger.Debug("Ignoring folder", zap.String("folder", name))
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		projects = append(projects, Project{Name: name, Path: filepath.Join(root, name)})
	}

	// os.ReadDir already sorts by name; keep the guarantee explicit.
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	s.logger.Debug("Project folders found", zap.String("root", root), zap.Int("count", len(projects)))
	return projects, nil
}

// FindSketch returns the path of the first file in dir ending in the
// scanner's extension. It returns errs.ErrNoSketch when there is none.
func (s *Scanner) FindSketch(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), s.ext) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", dir, errs.ErrNoSketch)
}

// LoadSketch finds and reads the sketch of a project.
func (s *Scanner) LoadSketch(p Project) (*Sketch, error) {
	path, err := s.FindSketch(p.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sketch %s: %w", path, err)
	}
	return &Sketch{Path: path, Code: string(data)}, nil
}
