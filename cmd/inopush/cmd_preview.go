package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"inopush/internal/world"
)

// runPreview generates the name and README for one folder and renders it
func runPreview(cmd *cobra.Command, args []string) error {
	// Preview never reaches GitHub.
	cfg.DryRun = true
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot preview %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot preview %s: not a folder", dir)
	}

	ctx := commandContext(cmd)
	comp, err := buildComponents(ctx, cfg, logger, "preview")
	if err != nil {
		return err
	}
	defer comp.Close()

	preview, err := comp.pipeline.Preview(ctx, world.Project{Name: filepath.Base(dir), Path: dir})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Repository: "+preview.Name))
	if preview.NameFallback {
		fmt.Fprintln(out, warnStyle.Render("(fallback name: the model returned nothing)"))
	}
	fmt.Fprintln(out, mutedStyle.Render("Sketch: "+preview.Sketch))

	rendered, err := renderMarkdown(preview.Readme)
	if err != nil {
		// Raw markdown is still useful.
		fmt.Fprintln(out, preview.Readme)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
