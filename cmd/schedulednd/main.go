package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/dmitrtrc/schedule-dnd/internal/cli"
	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/logging"
	"github.com/dmitrtrc/schedule-dnd/internal/service"
	"github.com/dmitrtrc/schedule-dnd/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"SQLite database path. When set, schedules are stored there instead of JSON files." type:"path"`

	Create   cli.CreateCmd   `cmd:"" help:"Create a new schedule interactively."`
	List     cli.ListCmd     `cmd:"" help:"List stored schedules."`
	Show     cli.ShowCmd     `cmd:"" help:"Show a schedule."`
	Export   cli.ExportCmd   `cmd:"" help:"Export a schedule to a file format."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate a stored schedule."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show schedule statistics."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a schedule."`
	Shift    struct {
		Add    cli.ShiftAddCmd    `cmd:"" help:"Add a shift to a unit."`
		Update cli.ShiftUpdateCmd `cmd:"" help:"Update an existing shift."`
		Delete cli.ShiftDeleteCmd `cmd:"" help:"Delete a shift."`
	} `cmd:"" help:"Manage shifts."`
	Backup struct {
		Create cli.BackupCreateCmd `cmd:"" help:"Create a backup of a schedule."`
		List   cli.BackupListCmd   `cmd:"" help:"List backups of a schedule."`
	} `cmd:"" help:"Manage backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive browser." default:"1"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Patrol duty roster manager for DND units"),
		kong.UsageOnError(),
		kong.Vars{
			"version":        constants.AppVersion,
			"default_format": cfg.DefaultExportFormat,
		},
	)

	logger, closeLogger, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeLogger(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log: %v\n", err)
		}
	}()

	var repo storage.Repository
	if CLI.DB != "" || strings.HasSuffix(cfg.DataDir, ".db") {
		dbPath := CLI.DB
		if dbPath == "" {
			dbPath = cfg.DataDir
		}
		sqlRepo, err := storage.NewSQLiteRepository(cfg, dbPath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer sqlRepo.Close()
		repo = sqlRepo
	} else {
		repo = storage.NewJSONRepository(cfg, logger)
	}

	appCtx := &cli.Context{
		Config:    cfg,
		Repo:      repo,
		Schedules: service.NewScheduleService(cfg, repo, logger),
		Exports:   service.NewExportService(cfg, repo, logger),
		Logger:    logger,
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
