package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"inopush/internal/errs"
)

// runScan lists project folders and the sketch each would use
func runScan(cmd *cobra.Command, args []string) error {
	scanner := newScanner(cfg, logger)
	projects, err := scanner.ListProjects(cfg.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		fmt.Fprintf(out, "No project folders under %s\n", cfg.Root)
		return nil
	}

	ready := 0
	for _, p := range projects {
		sketch, err := scanner.FindSketch(p.Path)
		switch {
		case err == nil:
			ready++
			fmt.Fprintf(out, "%s %-24s %s\n", okStyle.Render("✓"), p.Name, sketch)
		case errors.Is(err, errs.ErrNoSketch):
			fmt.Fprintf(out, "%s %-24s %s\n", warnStyle.Render("-"), p.Name, mutedStyle.Render("no "+cfg.SketchExt+" file, will be skipped"))
		default:
			fmt.Fprintf(out, "%s %-24s %v\n", failStyle.Render("✗"), p.Name, err)
		}
	}
	fmt.Fprintf(out, "\n%d of %d folders ready to publish\n", ready, len(projects))
	return nil
}
