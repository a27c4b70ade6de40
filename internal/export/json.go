package export

import (
	"encoding/json"
	"os"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// JSONExporter writes the canonical document format, the same shape the
// repository stores.
type JSONExporter struct {
	cfg *config.Config
}

func NewJSONExporter(cfg *config.Config) *JSONExporter {
	return &JSONExporter{cfg: cfg}
}

func (e *JSONExporter) Extension() string  { return "json" }
func (e *JSONExporter) FormatName() string { return "JSON" }

func (e *JSONExporter) Export(schedule models.Schedule, path string) (string, error) {
	path, err := resolvePath(e, e.cfg, schedule, path)
	if err != nil {
		return "", err
	}

	var data []byte
	if e.cfg.PrettyJSON {
		data, err = json.MarshalIndent(schedule, "", "  ")
	} else {
		data, err = json.Marshal(schedule)
	}
	if err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to serialize schedule: " + err.Error(), Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to write JSON file: " + err.Error(), Err: err}
	}
	return path, nil
}
