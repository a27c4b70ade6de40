package service

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/export"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
	"github.com/dmitrtrc/schedule-dnd/internal/storage"
)

// ExportService renders stored or in-memory schedules into output files.
type ExportService struct {
	cfg       *config.Config
	repo      storage.Repository
	schedules *ScheduleService
	logger    *slog.Logger
}

func NewExportService(cfg *config.Config, repo storage.Repository, logger *slog.Logger) *ExportService {
	return &ExportService{
		cfg:       cfg,
		repo:      repo,
		schedules: NewScheduleService(cfg, repo, logger),
		logger:    logger,
	}
}

// Export renders a schedule into one format. The failure is captured in the
// result rather than returned, so callers batching formats get a uniform
// report.
func (s *ExportService) Export(schedule models.Schedule, format models.ExportFormat, outputPath string) ExportResult {
	result := ExportResult{Format: format, OutputPath: outputPath}

	exporter, err := export.New(format, s.cfg)
	if err != nil {
		result.Err = err
		return result
	}

	path, err := exporter.Export(schedule, outputPath)
	if err != nil {
		result.Err = err
		return result
	}
	result.OutputPath = path

	if fi, err := os.Stat(path); err == nil {
		result.FileSize = fi.Size()
	}

	s.logger.Info("schedule exported", "format", format, "path", path, "bytes", result.FileSize)
	return result
}

// ExportFromFile loads a stored schedule and exports it.
func (s *ExportService) ExportFromFile(scheduleID string, format models.ExportFormat, outputPath string) (ExportResult, error) {
	schedule, err := s.schedules.Get(scheduleID)
	if err != nil {
		return ExportResult{}, err
	}
	return s.Export(schedule, format, outputPath), nil
}

// ExportAll renders a schedule into every supported format. Failures are
// isolated: one broken format never stops the others.
func (s *ExportService) ExportAll(schedule models.Schedule, outputDir string) []ExportResult {
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}

	results := make([]ExportResult, 0, len(export.SupportedFormats()))
	for _, format := range export.SupportedFormats() {
		exporter, err := export.New(format, s.cfg)
		if err != nil {
			results = append(results, ExportResult{Format: format, Err: err})
			continue
		}
		path := filepath.Join(outputDir, export.DefaultFilename(exporter, schedule))
		results = append(results, s.Export(schedule, format, path))
	}
	return results
}

// DefaultPath returns where a schedule would land for a format.
func (s *ExportService) DefaultPath(schedule models.Schedule, format models.ExportFormat) (string, error) {
	exporter, err := export.New(format, s.cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.cfg.OutputDir, export.DefaultFilename(exporter, schedule)), nil
}

// SupportedFormats lists every export format.
func (s *ExportService) SupportedFormats() []models.ExportFormat {
	return export.SupportedFormats()
}
