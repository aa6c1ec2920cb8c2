package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/cli"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/config"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/db"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/grid"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/logging"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/propagation"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/repository"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/roles"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/service"
)

func main() {
	var database *sql.DB
	app := &cli.App{}

	app.Bootstrap = func(cfg config.Config) error {
		logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		database, err = db.Open(cfg.Dialect, cfg.DataSource())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database opened", "dialect", cfg.Dialect)

		// Wire repositories
		q := db.Bind(cfg.Dialect, database)
		projectRepo := repository.NewSQLProjectRepo(q)
		versionRepo := repository.NewSQLVersionRepo(q)
		issueRepo := repository.NewSQLIssueRepo(q)
		settingRepo := repository.NewSQLSettingRepo(q)

		// Wire unit of work for transactional operations
		uow := db.NewUnitOfWork(database, cfg.Dialect)

		registry := roles.NewRegistry(settingRepo, logger)
		engine := propagation.NewEngine(uow, logger)
		builder := grid.NewBuilder(issueRepo, versionRepo, registry)

		var observers []service.UseCaseObserver
		if cfg.LogUseCases {
			observers = append(observers, service.NewLogUseCaseObserver(logger))
		}

		app.Projects = service.NewProjectService(projectRepo)
		app.Versions = service.NewVersionService(versionRepo)
		app.Issues = service.NewIssueService(issueRepo, registry, uow)
		app.Settings = service.NewSettingService(settingRepo, registry, observers...)
		app.Planning = service.NewPlanningService(engine, builder, issueRepo, registry, observers...)
		app.Import = service.NewImportService(uow, registry, observers...)
		return nil
	}

	err := cli.NewRootCmd(app).Execute()
	if database != nil {
		database.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
