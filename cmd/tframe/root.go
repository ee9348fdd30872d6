package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vidyasagar/tframe/internal/app"
	"github.com/vidyasagar/tframe/internal/browser"
	"github.com/vidyasagar/tframe/internal/frame"
	"github.com/vidyasagar/tframe/internal/logging"
	"github.com/vidyasagar/tframe/internal/storage"
	"github.com/vidyasagar/tframe/internal/theme"
)

// rootFlags holds command-line overrides for the loaded configuration.
type rootFlags struct {
	theme      string
	homepage   string
	timeout    int
	dataDir    string
	configPath string
	logLevel   string
}

type rootCommand struct {
	flags rootFlags
	cmd   *cobra.Command
}

func newRootCommand() *rootCommand {
	c := &rootCommand{}
	c.cmd = &cobra.Command{
		Use:   "tframe [url]",
		Short: "A terminal browser chrome around a single content frame",
		Long: `tframe shows one web page at a time inside a terminal frame, with an address
bar, back/forward history, refresh and a persisted cookie store.

Addresses are completed automatically: "lipsum" opens https://lipsum.com/.`,
		Example: `  tframe                       # open the homepage
  tframe example.org           # open a page on top of the homepage
  tframe --theme nord --timeout 10`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE:         c.run,
	}
	c.cmd.Flags().AddFlagSet(c.flagSet())
	return c
}

func (c *rootCommand) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVar(&c.flags.theme, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flags.StringVar(&c.flags.homepage, "homepage", "", "page the history starts with")
	flags.IntVar(&c.flags.timeout, "timeout", 0, "frame load timeout in seconds, 0 waits forever")
	flags.StringVar(&c.flags.dataDir, "data-dir", "", "directory for the cookie database and log file")
	flags.StringVar(&c.flags.configPath, "config", "", "config file path")
	flags.StringVar(&c.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return flags
}

// apply overrides cfg with every flag given on the command line.
func (c *rootCommand) apply(cfg *storage.Config) {
	flags := c.cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = c.flags.theme
	}
	if flags.Changed("homepage") {
		cfg.Homepage = c.flags.homepage
	}
	if flags.Changed("timeout") {
		cfg.LoadTimeoutSeconds = c.flags.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flags.logLevel
	}
}

func (c *rootCommand) run(_ *cobra.Command, args []string) error {
	cfg, err := storage.LoadConfig(c.flags.configPath)
	if err != nil {
		return err
	}
	c.apply(cfg)

	if !theme.Set(cfg.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(theme.List(), ", "))
	}
	sandbox, err := frame.ParseSandbox(cfg.Sandbox)
	if err != nil {
		return fmt.Errorf("config sandbox: %w", err)
	}

	dataDir := c.flags.dataDir
	if dataDir == "" {
		if dataDir, err = storage.DataDir(); err != nil {
			return err
		}
	}

	logger, closer, err := logging.Open(dataDir, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.WithFields(logrus.Fields{"version": version, "config": cfg.Path()}).Info("starting")

	cookies, closeDB := openCookies(dataDir, logger)
	defer closeDB()

	var startURL string
	if len(args) > 0 {
		startURL = args[0]
	}

	surface := frame.NewHTTPSurface(browser.NewFetcher(), browser.NewRenderer(cfg.GlamourStyle), logger)
	m, err := app.New(app.Options{
		Homepage: cfg.Homepage,
		StartURL: startURL,
		Surface:  surface,
		FrameOptions: []frame.Option{
			frame.WithSandbox(sandbox),
			frame.WithTimeout(cfg.LoadTimeout()),
		},
		Cookies: cookies,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	return err
}

// openCookies loads the cookie blob from the SQLite store, falling back to
// memory when the database cannot be used.
func openCookies(dataDir string, logger logrus.FieldLogger) (*storage.CookieStore, func()) {
	noop := func() {}

	db, err := storage.OpenDB(dataDir)
	if err == nil {
		cookies, err := storage.LoadCookieStore(storage.NewSQLiteKV(db), logger)
		if err == nil {
			logger.WithFields(logrus.Fields{"db": db.Path(), "entries": cookies.Len()}).Debug("cookies loaded")
			return cookies, func() { db.Close() }
		}
		db.Close()
		logger.WithError(err).Warn("reading cookie database failed, cookies will not persist")
	} else {
		logger.WithError(err).Warn("opening cookie database failed, cookies will not persist")
	}

	cookies, _ := storage.LoadCookieStore(storage.NewMemoryKV(), logger)
	return cookies, noop
}
