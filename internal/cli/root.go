package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/config"
	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Versions service.VersionService
	Issues   service.IssueService
	Settings service.SettingService
	Planning service.PlanningService
	Import   service.ImportService

	// Bootstrap, when set, wires the services from the loaded configuration
	// before any command runs.
	Bootstrap func(cfg config.Config) error

	// IsTerminal reports whether w is an interactive terminal. Defaults to
	// an isatty check on *os.File writers.
	IsTerminal func(w io.Writer) bool
}

// NewRootCmd creates the top-level "ladder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "ladder",
		Short:         "Epic / Feature / UserStory planning with version propagation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			if err := app.Bootstrap(cfg); err != nil {
				return fmt.Errorf("starting ladder: %w", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default .ladder/config.yaml or ~/.ladder/config.yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("dialect", "", "Store dialect: sqlite or postgres")
	pf.String("dsn", "", "Postgres connection string")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.Bool("log-use-cases", false, "Log every service use case")

	root.AddCommand(
		newProjectCmd(app),
		newVersionCmd(app),
		newIssueCmd(app),
		newSettingCmd(app),
		newPropagateCmd(app),
		newCascadeCmd(app),
		newGridCmd(app),
		newCheckCmd(app),
		newImportCmd(app),
	)

	return root
}
