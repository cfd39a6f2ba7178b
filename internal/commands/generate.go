package commands

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/billdoc-dev/billdoc/internal/config"
	"github.com/billdoc-dev/billdoc/internal/gitops"
	"github.com/billdoc-dev/billdoc/internal/issuelog"
	"github.com/billdoc-dev/billdoc/internal/numbering"
	"github.com/billdoc-dev/billdoc/internal/render"
)

func newGenerateCommand(a *app) *cobra.Command {
	var autoNumber bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Render a document to PDF and record its number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], autoNumber, outPath)
		},
	}

	cmd.Flags().BoolVar(&autoNumber, "auto-number", false, "assign the next number when the document has none")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output PDF path (default <output dir>/<number>.pdf)")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, file string, autoNumber bool, outPath string) error {
	root, err := a.root()
	if err != nil {
		return err
	}
	cfg, err := a.loadConfig(root, false)
	if err != nil {
		return err
	}
	doc, sum, err := a.computeDocument(file, cfg)
	if err != nil {
		return err
	}

	reg := a.registry(root)
	number := doc.Number
	if number == "" {
		if !autoNumber {
			return fmt.Errorf("%s has no number: set number or pass --auto-number", file)
		}
		if number, err = reg.PeekNext(doc.Type); err != nil {
			return err
		}
	}

	v, err := render.NewView(cfg, doc, sum, number)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = filepath.Join(root, cfg.Output.Dir, number+".pdf")
	}
	if err := writePDF(&render.PDF{FontPath: fontPath(root, cfg)}, v, outPath); err != nil {
		return err
	}

	if err := reg.Commit(doc.Type, number); err != nil {
		if errors.Is(err, numbering.ErrNotCommitted) {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"\n*** WARNING: %s was written but number %s was NOT recorded. ***\n"+
					"*** The next document may reuse it. Fix %s and run: billdoc number commit %s %s ***\n\n",
				outPath, number, numbering.FileName, doc.Type, number)
		}
		return err
	}

	entry := issuelog.Entry{
		Timestamp: a.now(),
		Type:      doc.Type,
		Number:    number,
		Client:    doc.Client.Name,
		Payable:   sum.Payable,
		File:      relTo(root, outPath),
	}
	if err := issuelog.Append(root, entry); err != nil {
		a.logger.Warn("failed to write issuance log", slog.Any("error", err))
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(root) {
		author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
		paths := []string{numbering.FileName, relTo(root, issuelog.Path(root))}
		if rel := relTo(root, outPath); !filepath.IsAbs(rel) {
			paths = append(paths, rel)
		}
		if hash, err := gitops.CommitPaths(root, fmt.Sprintf("issue: %s %s", doc.Type, number), author, paths...); err != nil {
			a.logger.Warn("git commit failed", slog.Any("error", err))
		} else {
			a.logger.Debug("committed issued document", slog.String("commit", hash))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s %s -> %s\n", doc.Type, number, outPath)
	return nil
}

func writePDF(r render.Renderer, v render.View, path string) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// fontPath resolves output.font_path against the project root.
func fontPath(root string, cfg *config.Config) string {
	p := cfg.Output.FontPath
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// relTo returns path relative to root, or path itself when it lies outside.
func relTo(root, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return abs
	}
	return rel
}
