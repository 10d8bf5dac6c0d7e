package world

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteReadme writes text to file inside dir, replacing any existing file.
func WriteReadme(dir, file, text string) (string, error) {
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
