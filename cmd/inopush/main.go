// Command inopush publishes Arduino/ESP32 project folders to GitHub, one
// repository per folder, with AI-generated names and READMEs.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"inopush/internal/config"
	"inopush/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	rootDir    string
	dryRun     bool
	delay      time.Duration

	// Resolved at PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inopush",
	Short: "Publish Arduino/ESP32 project folders to GitHub",
	Long: `inopush walks a folder of Arduino/ESP32 projects and, for every project
folder holding a sketch, asks Gemini for a repository name and a README,
creates the GitHub repository and force-pushes the folder to it.

Run without a subcommand to publish everything under the configured root.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, loaded)
		cfg = loaded

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPublish,
}

// runCmd publishes every project folder
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Publish every project folder under the root",
	Long: `Processes each project folder in order:
  1. Read the first sketch file
  2. Generate a repository name, then a README (written into the folder)
  3. Create the GitHub repository
  4. git init, commit everything and force-push to the configured branch
  5. Pause before the next folder`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

// previewCmd shows what would be generated for one folder
var previewCmd = &cobra.Command{
	Use:   "preview [folder]",
	Short: "Generate and render the name and README for one folder without writing",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

// scanCmd lists the folders a run would process
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List project folders and the sketch each one would use",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

// configCmd groups config helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "inopush.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Project root folder (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Generate names and READMEs only; never touch GitHub")
	rootCmd.PersistentFlags().DurationVar(&delay, "delay", 0, "Pause between projects (overrides config)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		c.Root = rootDir
	}
	if flags.Changed("dry-run") {
		c.DryRun = dryRun
	}
	if flags.Changed("delay") {
		c.Delay = delay.String()
	}
}
