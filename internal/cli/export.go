package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

type ExportCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Format   string `short:"f" help:"Export format (json|excel|csv|markdown|html)." default:"${default_format}"`
	Output   string `short:"o" help:"Output file path. Defaults to the output directory." type:"path"`
	All      bool   `short:"a" help:"Export to every supported format."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if c.All {
		return c.runAll(ctx)
	}

	format, err := models.ParseExportFormat(c.Format)
	if err != nil {
		return err
	}

	result, err := ctx.Exports.ExportFromFile(c.Schedule, format, c.Output)
	if err != nil {
		return err
	}
	if !result.Success() {
		return result.Err
	}

	printOK("Exported to %s (%s)", result.OutputPath, formatSize(result.FileSize))
	return nil
}

func (c *ExportCmd) runAll(ctx *Context) error {
	schedule, err := ctx.Schedules.Get(c.Schedule)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range ctx.Exports.ExportAll(schedule, c.Output) {
		if result.Success() {
			printOK("%-8s %s (%s)", result.Format, filepath.Base(result.OutputPath), formatSize(result.FileSize))
		} else {
			printErr("%-8s %v", result.Format, result.Err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d formats failed", failed, len(ctx.Exports.SupportedFormats()))
	}
	return nil
}

func formatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024.0)
}
