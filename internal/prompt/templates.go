// Package prompt renders the prompts sent to the text generation service.
// Built-in templates are embedded; a directory may override any of them.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names, matching files under templates/.
const (
	NameTemplate   = "name.tmpl"
	ReadmeTemplate = "readme.tmpl"
)

// Data is what every template is executed with.
type Data struct {
	Name string // project name, empty for the name prompt
	Code string // source excerpt
}

// Library holds the parsed prompt templates.
type Library struct {
	templates map[string]*template.Template
}

// Load parses the embedded templates, then any same-named file in
// overrideDir. An empty overrideDir uses only the embedded set.
func Load(overrideDir string) (*Library, error) {
	lib := &Library{templates: make(map[string]*template.Template)}

	for _, name := range []string{NameTemplate, ReadmeTemplate} {
		src, err := embeddedTemplates.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded template %s: %w", name, err)
		}

		if overrideDir != "" {
			custom, err := os.ReadFile(filepath.Join(overrideDir, name))
			switch {
			case err == nil:
				src = custom
			case os.IsNotExist(err):
			default:
				return nil, fmt.Errorf("failed to read template override %s: %w", name, err)
			}
		}

		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		lib.templates[name] = tmpl
	}

	return lib, nil
}

// Render executes the named template.
func (l *Library) Render(name string, data Data) (string, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Excerpt returns at most limit characters of code.
func Excerpt(code string, limit int) string {
	if limit <= 0 {
		return code
	}
	runes := []rune(code)
	if len(runes) <= limit {
		return code
	}
	return string(runes[:limit])
}
