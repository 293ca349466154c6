package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/projecthub/internal/config"
	"github.com/robby/projecthub/internal/fixture"
	"github.com/robby/projecthub/internal/logging"
	"github.com/robby/projecthub/internal/session"
	"github.com/robby/projecthub/internal/store"
	"github.com/robby/projecthub/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// flags holds the CLI flag values shared by every command.
type flags struct {
	config   string
	email    string
	password string
	role     string
	project  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "projecthub",
		Short: "Terminal dashboard for ProjectHub projects",
		Long: `projecthub is a terminal dashboard over the ProjectHub demo data set.

Browse projects, milestones and tasks, view Gantt timelines and baseline
deviation, and move tasks on a kanban board.

Authentication:
  1. Flags: --email and --password (and optionally --role)
  2. Environment variables: PROJECTHUB_EMAIL and PROJECTHUB_PASSWORD
  3. Otherwise the login screen is shown.

Every demo account uses the password "demo".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(f)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "Config file. Defaults to $XDG_CONFIG_HOME/"+config.RelPath)
	pf.StringVar(&f.email, "email", "", "Login email. Skips the login screen together with --password.")
	pf.StringVar(&f.password, "password", "", "Login password.")
	pf.StringVar(&f.role, "role", "", "Expected role (PM, Member or Executive).")
	pf.StringVar(&f.project, "project", "", "Project ID or code to open after login. Skips the project picker.")

	rootCmd.AddCommand(
		newProjectsCmd(f),
		newGanttCmd(f),
		newBaselineCmd(f),
		newReportCmd(f),
	)
	return rootCmd
}

// env is everything a command needs once startup has finished.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

func setup(f *flags) (*env, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var data *fixture.Data
	if cfg.Fixture != "" {
		data, err = fixture.Load(cfg.Fixture)
	} else {
		data, err = fixture.Default()
	}
	if err != nil {
		return nil, err
	}

	s, err := store.New(data, store.Options{BcryptCost: cfg.BcryptCost, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	log.Debug("startup complete", zap.String("config", cfg.Path), zap.String("fixture", cfg.Fixture))
	return &env{cfg: cfg, log: log, store: s}, nil
}

func runTUI(f *flags) error {
	e, err := setup(f)
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	opts := tui.Options{
		Store:        e.store,
		Logger:       e.log,
		Clock:        e.cfg.Clock(),
		UpcomingDays: e.cfg.UpcomingDays,
	}

	if f.project != "" {
		p, err := findProject(e.store, f.project)
		if err != nil {
			return err
		}
		opts.ProjectID = p.ID
	}

	// Credentials are optional; without them the login screen is shown
	creds, err := session.Resolve(
		&session.FlagProvider{Email: f.email, Password: f.password, Role: f.role},
		&session.EnvProvider{},
	)
	switch {
	case err == nil:
		sess, err := session.Login(e.store.Users(), creds)
		if err != nil {
			e.log.Warn("login failed, showing login screen", zap.String("email", creds.Email), zap.Error(err))
		} else {
			opts.Session = &sess
		}
	case !errors.Is(err, session.ErrNoCredentials):
		return err
	}

	app := tui.NewAppModel(opts)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}
