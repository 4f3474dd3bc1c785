package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docmend/docmend/internal"
	"github.com/docmend/docmend/internal/fix"
	"github.com/docmend/docmend/internal/history"
	"github.com/docmend/docmend/internal/mcpserver"
	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/scan"
	"github.com/docmend/docmend/internal/storage"
	pkgconfig "github.com/docmend/docmend/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

// loadConfig builds the effective configuration: defaults, overlaid by the
// config file when present, overridden by the --docs-dir flag when set.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if dir := cmd.String("docs-dir"); dir != "" {
		cfg.Docs.Path = dir
	}
	return cfg, nil
}

// newLogger returns a JSON logger on stderr, leaving stdout free for the
// report output of scan/fix.
func newLogger(cfg *internal.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func openTree(cfg *internal.Config) (*storage.Tree, error) {
	tree, err := storage.NewTree(cfg.Docs.Path, cfg.Docs.Extension)
	if err != nil {
		return nil, fmt.Errorf("init docs tree: %w", err)
	}
	return tree, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runScan(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tree, err := openTree(cfg)
	if err != nil {
		return err
	}

	report, err := scan.NewScanner(tree, logger).Scan()
	if err != nil {
		return err
	}
	if err := printJSON(map[string]any{
		"total":       report.Total(),
		"by_category": report.ByCategory,
	}); err != nil {
		return err
	}
	if report.Total() > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func runFix(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tree, err := openTree(cfg)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	summary, err := fix.New(tree, dryRun, logger).Run()
	if err != nil {
		return err
	}

	if err := saveSummary(cfg.Reports.Dir, summary, logger); err != nil {
		// The fix itself succeeded; a missing report file is advisory.
		logger.Error("save summary report failed", slog.String("error", err.Error()))
	}
	recordRun(cfg, tree, summary, logger)

	if err := printJSON(summary); err != nil {
		return err
	}
	if summary.Validation.RemainingIssues > 0 {
		return cli.Exit("some issues remain after fixing", 1)
	}
	return nil
}

// saveSummary persists the JSON fix summary to the reports directory with a
// unix-timestamp filename.
func saveSummary(dir string, summary *models.FixSummary, logger *slog.Logger) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("link-fix-summary_%d.json", time.Now().Unix()))
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return err
	}
	logger.Info("summary report saved", slog.String("path", path))
	return nil
}

// recordRun stores the run in the history database, best-effort.
func recordRun(cfg *internal.Config, tree *storage.Tree, summary *models.FixSummary, logger *slog.Logger) {
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Error("open history failed", slog.String("error", err.Error()))
		return
	}
	defer db.Close()
	if _, err := db.RecordRun(history.NewRun(tree.Root(), summary)); err != nil {
		logger.Error("record run failed", slog.String("error", err.Error()))
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := []internal.Option{internal.WithConfig(cfg)}
	if cmd.Bool("no-watch") {
		opts = append(opts, internal.WithoutWatcher())
	}
	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	tree, err := openTree(cfg)
	if err != nil {
		return err
	}
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("init history: %w", err)
	}
	defer db.Close()

	return mcpserver.New(tree, db, logger).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "docmend",
		Usage: "Documentation link checker and fixer: scans Markdown trees for broken links and remediates them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "docs-dir",
				Usage:   "Documentation directory (overrides config)",
				Sources: cli.EnvVars("DOCMEND_DOCS_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Usage:  "Classify all links and report broken ones without fixing anything",
				Action: runScan,
			},
			{
				Name:  "fix",
				Usage: "Run the comprehensive fix: create stubs, rewrite research links, scaffold samples",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Show what would be done without making changes",
					},
				},
				Action: runFix,
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP API with a docs-tree watcher and SSE events",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-watch",
						Usage: "Disable the docs-tree watcher",
					},
				},
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "Start the MCP server on stdio",
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
