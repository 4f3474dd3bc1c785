package api

import (
	"log/slog"

	"github.com/docmend/docmend/internal/fix"
	"github.com/docmend/docmend/internal/history"
	"github.com/docmend/docmend/internal/models"
	"github.com/docmend/docmend/internal/scan"
	"github.com/docmend/docmend/internal/storage"
)

// FixEventPublisher receives the headline numbers of a completed fix run,
// for pushing to connected clients.
type FixEventPublisher interface {
	PublishFixResult(totalFixes, remaining int, dryRun bool)
}

// Service coordinates tree, fixer, and history operations for the API layer.
type Service struct {
	tree   *storage.Tree
	db     history.RunStore
	events FixEventPublisher // nil when serve mode runs without SSE
	logger *slog.Logger
}

// NewService creates a new API service.
func NewService(tree *storage.Tree, db history.RunStore, events FixEventPublisher, logger *slog.Logger) *Service {
	return &Service{tree: tree, db: db, events: events, logger: logger}
}

// ListDocs returns metadata for every document in the tree.
func (s *Service) ListDocs() ([]models.DocMeta, error) {
	return s.tree.List()
}

// Scan classifies the whole tree without remediating anything.
func (s *Service) Scan() (*models.ScanReport, error) {
	return scan.NewScanner(s.tree, s.logger).Scan()
}

// Fix runs a full remediation pass and records the run in the history store.
// Each call gets a fresh Fixer, so runs never share tracking state.
func (s *Service) Fix(dryRun bool) (*models.FixSummary, error) {
	summary, err := fix.New(s.tree, dryRun, s.logger).Run()
	if err != nil {
		return nil, err
	}
	if _, err := s.db.RecordRun(history.NewRun(s.tree.Root(), summary)); err != nil {
		// The fix itself succeeded; losing the history row is not fatal.
		s.logger.Error("record run failed", slog.String("error", err.Error()))
	}
	if s.events != nil {
		s.events.PublishFixResult(summary.TotalFixes, summary.Validation.RemainingIssues, summary.DryRun)
	}
	return summary, nil
}

// Runs returns the most recent recorded runs.
func (s *Service) Runs(limit int) ([]history.Run, error) {
	return s.db.ListRuns(limit)
}

// LastRun returns the most recent recorded run.
func (s *Service) LastRun() (*history.Run, error) {
	return s.db.LastRun()
}
