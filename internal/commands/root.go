package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/billdoc-dev/billdoc/internal/buildinfo"
	"github.com/billdoc-dev/billdoc/internal/config"
	"github.com/billdoc-dev/billdoc/internal/document"
	"github.com/billdoc-dev/billdoc/internal/numbering"
	"github.com/billdoc-dev/billdoc/internal/tax"
)

// app carries the state shared by every subcommand.
type app struct {
	projectDir string
	verbose    bool
	now        func() time.Time
	logger     *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(now func() time.Time) *cobra.Command {
	a := &app{now: now}

	rootCmd := &cobra.Command{
		Use:     "billdoc",
		Short:   "Invoices, quotations and receipts with Thai tax and numbering",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.projectDir, "project", "C", ".", "project directory")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newNumberCommand(a))
	rootCmd.AddCommand(newComputeCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))

	return rootCmd
}

func (a *app) root() (string, error) {
	dir, err := filepath.Abs(a.projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return dir, nil
}

func (a *app) registry(root string) *numbering.Registry {
	return numbering.NewRegistry(numbering.NewFileStore(root), a.now, a.logger)
}

// loadConfig reads billdoc.yaml. A project without one falls back to the
// defaults only when optional is set.
func (a *app) loadConfig(root string, optional bool) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if optional {
			a.logger.Debug("no project config, using defaults", slog.Any("error", err))
			return config.Default(""), nil
		}
		return nil, fmt.Errorf("%w (run billdoc init first)", err)
	}
	return cfg, nil
}

// computeDocument validates and computes a document file.
func (a *app) computeDocument(path string, cfg *config.Config) (*document.Document, *document.Summary, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := document.Validate(doc); err != nil {
		return nil, nil, err
	}
	sum, err := document.Compute(doc, legacyDefaults(cfg))
	if err != nil {
		return nil, nil, err
	}
	return doc, sum, nil
}

func legacyDefaults(cfg *config.Config) document.LegacyDefaults {
	return document.LegacyDefaults{
		Rate: decimal.NewFromFloat(cfg.Tax.Rate),
		Kind: tax.Kind(cfg.Tax.Kind),
	}
}
