package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/stagecrew/stageinv/internal/announce"
	"github.com/stagecrew/stageinv/internal/auth"
	"github.com/stagecrew/stageinv/internal/config"
	"github.com/stagecrew/stageinv/internal/db"
	"github.com/stagecrew/stageinv/internal/images"
	"github.com/stagecrew/stageinv/internal/jsonfile"
)

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	configPath string
	dataDir    string
	dbPath     string
	logPath    string
	logFormat  string

	cfg      *config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:               "stageinv",
		Short:             "Theatre props, costumes and equipment inventory",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.closeLog != nil {
				c.closeLog()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "config file (default: "+config.DefaultFile+" if present)")
	pf.StringVar(&c.dataDir, "data-dir", "", "directory for the database, images and JSON files")
	pf.StringVarP(&c.dbPath, "db", "d", "", "SQLite database path")
	pf.StringVarP(&c.logPath, "log", "l", "", "log file path (default: stdout/stderr only)")
	pf.StringVar(&c.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		c.serveCmd(),
		c.seedCmd(),
		c.locationsCmd(),
		c.exportCmd(),
		c.announceCmd(),
		c.configCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = c.dataDir
	}
	if flags.Changed("db") {
		cfg.DBPath = c.dbPath
	}
	if flags.Changed("log") {
		cfg.LogPath = c.logPath
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	c.cfg = cfg

	closeLog, err := setupLogger(cfg.Path(cfg.LogPath), cfg.LogFormat)
	if err != nil {
		return err
	}
	c.closeLog = closeLog
	return nil
}

// stores bundles the opened persistence layers.
type stores struct {
	db     *bun.DB
	images *images.Store
	board  *announce.Board
	creds  *auth.CredentialStore
}

func (s *stores) Close() {
	s.db.Close()
}

// openStores opens the database (creating the schema as needed) and the
// JSON-file backed stores.
func (c *cli) openStores(ctx context.Context) (*stores, error) {
	cfg := c.cfg

	dbPath := cfg.Path(cfg.DBPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.EnsureSchema(ctx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	imgStore, err := images.New(
		cfg.Path(cfg.ImagesDir),
		jsonfile.NewFile(cfg.Path(cfg.ImageMapPath), images.NewMapping),
	)
	if err != nil {
		database.Close()
		return nil, err
	}

	clock := announce.RealClock{}
	board := announce.New(
		jsonfile.NewFile(cfg.Path(cfg.AnnouncementsPath), announce.SeedFunc(clock)),
		clock,
		announce.UUIDGenerator{},
	)

	return &stores{
		db:     database,
		images: imgStore,
		board:  board,
		creds:  auth.NewCredentialStore(cfg.Path(cfg.CredentialsPath)),
	}, nil
}
