package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inopush/internal/errs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestListProjects_ExcludesIgnoredAndFiles(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"weather", "door_lock", "libraries", ".git", "blink"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	writeFile(t, filepath.Join(root, "notes.txt"), "not a project")
	writeFile(t, filepath.Join(root, "stray.ino"), "void setup() {}")

	s := NewScanner(map[string]struct{}{"libraries": {}}, ".ino", nil)
	projects, err := s.ListProjects(root)
	require.NoError(t, err)

	want := []Project{
		{Name: "blink", Path: filepath.Join(root, "blink")},
		{Name: "door_lock", Path: filepath.Join(root, "door_lock")},
		{Name: "weather", Path: filepath.Join(root, "weather")},
	}
	if diff := cmp.Diff(want, projects); diff != "" {
		t.Fatalf("ListProjects mismatch (-want +got):\n%s", diff)
	}
}

func TestListProjects_SkipsHiddenFolders(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{".vscode", ".pio", "thermostat"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	writeFile(t, filepath.Join(root, ".pio", "hidden.ino"), "void setup() {}")

	s := NewScanner(nil, ".ino", nil)
	projects, err := s.ListProjects(root)
	require.NoError(t, err)

	want := []Project{{Name: "thermostat", Path: filepath.Join(root, "thermostat")}}
	if diff := cmp.Diff(want, projects); diff != "" {
		t.Fatalf("ListProjects mismatch (-want +got):\n%s", diff)
	}
}

func TestListProjects_MissingRoot(t *testing.T) {
	s := NewScanner(nil, ".ino", nil)
	_, err := s.ListProjects(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListProjects_EmptyRoot(t *testing.T) {
	s := NewScanner(nil, ".ino", nil)
	projects, err := s.ListProjects(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestFindSketch_FirstInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b_main.ino"), "b")
	writeFile(t, filepath.Join(dir, "a_main.ino"), "a")
	writeFile(t, filepath.Join(dir, "helper.h"), "h")

	s := NewScanner(nil, ".ino", nil)
	path, err := s.FindSketch(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_main.ino"), path)
}

func TestFindSketch_NoSketch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "# hi")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fake.ino"), 0755))

	s := NewScanner(nil, ".ino", nil)
	_, err := s.FindSketch(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNoSketch))
}

func TestLoadSketch(t *testing.T) {
	dir := t.TempDir()
	code := "#include <Servo.h>\nvoid setup() {}\nvoid loop() {}\n"
	writeFile(t, filepath.Join(dir, "arm.ino"), code)

	s := NewScanner(nil, ".ino", nil)
	sketch, err := s.LoadSketch(Project{Name: "arm", Path: dir})
	require.NoError(t, err)
	assert.Equal(t, code, sketch.Code)
	assert.Equal(t, filepath.Join(dir, "arm.ino"), sketch.Path)
}

func TestWriteReadme_Overwrites(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "old")

	path, err := WriteReadme(dir, "README.md", "# New\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# New\n", string(data))
}

func TestWriteReadme_MissingDir(t *testing.T) {
	_, err := WriteReadme(filepath.Join(t.TempDir(), "gone"), "README.md", "x")
	assert.Error(t, err)
}
