package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inopush/internal/logging"
)

// runPublish executes a full batch run
func runPublish(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runLog, runID := logging.WithRun(logger)
	boot := logging.For(runLog, logging.CategoryBoot)
	boot.Info("Configuration loaded",
		zap.String("config", configPath),
		zap.String("root", cfg.Root),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("dry_run", cfg.DryRun))

	comp, err := buildComponents(ctx, cfg, runLog, runID)
	if err != nil {
		return err
	}
	defer comp.Close()

	report, err := comp.pipeline.Run(ctx)
	if report != nil && len(report.Results) > 0 {
		fmt.Fprint(cmd.OutOrStdout(), renderReport(report))
	}
	return runError(err, boot)
}

// runError reports a cancelled run as interrupted so the exit status is
// non-zero.
func runError(err error, log *zap.Logger) error {
	if errors.Is(err, context.Canceled) {
		log.Warn("Run interrupted")
		return fmt.Errorf("run interrupted: %w", err)
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
