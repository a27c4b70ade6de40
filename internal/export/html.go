package export

import (
	"fmt"
	"html/template"
	"os"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// HTMLExporter renders a self-contained page with summary cards, the shift
// table and print styles. Everything is inlined so the file can be opened
// or attached as-is.
type HTMLExporter struct {
	cfg *config.Config
}

func NewHTMLExporter(cfg *config.Config) *HTMLExporter {
	return &HTMLExporter{cfg: cfg}
}

func (e *HTMLExporter) Extension() string  { return "html" }
func (e *HTMLExporter) FormatName() string { return "HTML" }

type htmlStat struct {
	Number int
	Label  string
}

type htmlRow struct {
	UnitName  string
	Date      string
	DayOfWeek string
	DutyType  string
	DutySlug  string
	Time      string
	Notes     string
}

type htmlPage struct {
	Title           string
	MonthName       string
	Year            int
	Stats           []htmlStat
	Rows            []htmlRow
	IncludeMetadata bool
	CreatedAt       string
	Source          string
	Signatory       string
	Note            string
	AppVersion      string
}

func (e *HTMLExporter) Export(schedule models.Schedule, path string) (string, error) {
	path, err := resolvePath(e, e.cfg, schedule, path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to create HTML file: " + err.Error(), Err: err}
	}
	defer f.Close()

	if err := htmlTemplate.Execute(f, e.page(schedule)); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to render HTML: " + err.Error(), Err: err}
	}
	return path, nil
}

func (e *HTMLExporter) page(schedule models.Schedule) htmlPage {
	meta := schedule.Metadata
	monthName := meta.Month.DisplayName()

	page := htmlPage{
		Title:           fmt.Sprintf("График дежурств ДНД - %s %d", monthName, meta.Year),
		MonthName:       monthName,
		Year:            meta.Year,
		IncludeMetadata: e.cfg.IncludeMetadata,
		CreatedAt:       meta.CreatedAt.Format("02.01.2006 15:04"),
		AppVersion:      constants.AppVersion,
	}

	page.Stats = []htmlStat{
		{Number: len(schedule.Units), Label: "Подразделений"},
		{Number: schedule.TotalShifts(), Label: "Всего дежурств"},
	}
	byType := schedule.ShiftsByType()
	for _, dt := range models.DutyTypes() {
		if count, ok := byType[dt]; ok {
			page.Stats = append(page.Stats, htmlStat{Number: count, Label: string(dt)})
		}
	}

	for _, unit := range schedule.Units {
		for _, shift := range unit.Shifts {
			page.Rows = append(page.Rows, htmlRow{
				UnitName:  unit.UnitName,
				Date:      shift.Date,
				DayOfWeek: shift.DayOfWeek(),
				DutyType:  string(shift.DutyType),
				DutySlug:  dutySlug(shift.DutyType),
				Time:      shift.Time,
				Notes:     shift.Notes,
			})
		}
	}

	if meta.Source != nil {
		page.Source = *meta.Source
	}
	if meta.Signatory != nil {
		page.Signatory = *meta.Signatory
	}
	if meta.Note != nil {
		page.Note = *meta.Note
	}
	return page
}

var htmlTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 15px;
            box-shadow: 0 10px 40px rgba(0,0,0,0.2);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { font-size: 2em; margin-bottom: 10px; }
        .header .subtitle { font-size: 1.1em; opacity: 0.9; }
        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            padding: 30px;
            background: #f8f9fa;
        }
        .stat-card {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            text-align: center;
        }
        .stat-card .number {
            font-size: 2em;
            font-weight: bold;
            color: #667eea;
            margin-bottom: 5px;
        }
        .stat-card .label { color: #6c757d; font-size: 0.9em; }
        .content { padding: 30px; }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 20px;
            background: white;
        }
        thead { background: #667eea; color: white; }
        th, td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid #e9ecef;
        }
        th {
            font-weight: 600;
            text-transform: uppercase;
            font-size: 0.85em;
            letter-spacing: 0.5px;
        }
        tbody tr:hover { background: #f8f9fa; }
        .badge {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 20px;
            font-size: 0.85em;
            font-weight: 600;
        }
        .badge-pdn { background: #e3f2fd; color: #1976d2; }
        .badge-ppsp { background: #f3e5f5; color: #7b1fa2; }
        .badge-uup { background: #fff3e0; color: #f57c00; }
        .footer {
            background: #f8f9fa;
            padding: 20px;
            text-align: center;
            color: #6c757d;
            font-size: 0.9em;
            border-top: 1px solid #e9ecef;
        }
        .metadata {
            background: #f8f9fa;
            padding: 20px;
            margin-top: 30px;
            border-radius: 10px;
            border-left: 4px solid #667eea;
        }
        .metadata h3 { margin-bottom: 15px; color: #495057; }
        .metadata p { margin: 8px 0; color: #6c757d; }
        @media print {
            body { background: white; padding: 0; }
            .container { box-shadow: none; }
            .header {
                background: #667eea !important;
                -webkit-print-color-adjust: exact;
                print-color-adjust: exact;
            }
            .stats { break-inside: avoid; }
            thead {
                background: #667eea !important;
                -webkit-print-color-adjust: exact;
                print-color-adjust: exact;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>График дежурств ДНД</h1>
            <div class="subtitle">{{.MonthName}} {{.Year}}</div>
        </div>

        <div class="stats">
{{- range .Stats}}
            <div class="stat-card">
                <div class="number">{{.Number}}</div>
                <div class="label">{{.Label}}</div>
            </div>
{{- end}}
        </div>

        <div class="content">
            <table>
                <thead>
                    <tr>
                        <th>Подразделение</th>
                        <th>Дата</th>
                        <th>День недели</th>
                        <th>Тип дежурства</th>
                        <th>Время</th>
                        <th>Примечания</th>
                    </tr>
                </thead>
                <tbody>
{{- range .Rows}}
                    <tr>
                        <td><strong>{{.UnitName}}</strong></td>
                        <td>{{.Date}}</td>
                        <td>{{.DayOfWeek}}</td>
                        <td><span class="badge badge-{{.DutySlug}}">{{.DutyType}}</span></td>
                        <td>{{.Time}}</td>
                        <td>{{.Notes}}</td>
                    </tr>
{{- end}}
                </tbody>
            </table>
{{- if .IncludeMetadata}}
            <div class="metadata">
                <h3>Информация о документе</h3>
                <p><strong>Создано:</strong> {{.CreatedAt}}</p>
{{- if .Source}}
                <p><strong>Источник:</strong> {{.Source}}</p>
{{- end}}
{{- if .Signatory}}
                <p><strong>Подписант:</strong> {{.Signatory}}</p>
{{- end}}
{{- if .Note}}
                <p><strong>Примечание:</strong> {{.Note}}</p>
{{- end}}
            </div>
{{- end}}
        </div>

        <div class="footer">
            Документ создан автоматически системой Schedule DND v{{.AppVersion}}
        </div>
    </div>
</body>
</html>
`))
