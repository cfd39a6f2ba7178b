package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/billdoc-dev/billdoc/internal/config"
	"github.com/billdoc-dev/billdoc/internal/gitops"
	"github.com/billdoc-dev/billdoc/internal/numbering"
)

const exampleInvoice = `type: invoice
issue_date: 2026-01-15
due_date: 2026-02-14
client:
  name: Example Client Co., Ltd.
  address: 1 Silom Rd, Bangkok 10500
  tax_id: "0105550000000"
items:
  - description: Consulting
    quantity: 10
    unit: hour
    unit_price: 1500
tax_config:
  vat: {enabled: true, rate: 0.07}
  withholding: {enabled: true, rate: 0.03}
`

func newInitCommand(a *app) *cobra.Command {
	var name string
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new billdoc project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.projectDir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return a.runInit(cmd, absDir, name, useGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit issued documents")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, dir, name string, useGit bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default(name)
	cfg.Git.AutoCommit = useGit

	for _, d := range []string{"documents", cfg.Output.Dir, "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	if err := numbering.NewRegistry(numbering.NewFileStore(dir), a.now, a.logger).Initialize(); err != nil {
		return err
	}

	example := filepath.Join(dir, "documents", "example-invoice.yaml")
	if err := os.WriteFile(example, []byte(exampleInvoice), 0o644); err != nil {
		return fmt.Errorf("writing example document: %w", err)
	}

	out := cmd.OutOrStdout()
	if !useGit {
		fmt.Fprintf(out, "Initialized billdoc project at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return err
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized billdoc project at %s (%s)\n", dir, hash)
	return nil
}
