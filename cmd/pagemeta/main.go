package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/etree"
	"github.com/fwojciec/pagemeta/goquery"
	"github.com/fwojciec/pagemeta/htmltomarkdown"
	pmhttp "github.com/fwojciec/pagemeta/http"
	"github.com/fwojciec/pagemeta/inspect"
	"github.com/fwojciec/pagemeta/lingua"
	"github.com/fwojciec/pagemeta/readability"
	"github.com/fwojciec/pagemeta/robots"
	"github.com/fwojciec/pagemeta/rod"
	pmslog "github.com/fwojciec/pagemeta/slog"
	"github.com/fwojciec/pagemeta/sqlite"
	"github.com/fwojciec/pagemeta/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run() to override the config file
	// and the default location.
	DBPath string

	// Stdin is read by "file -".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Inspections pagemeta.InspectionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: os.Getenv("PAGEMETA_DB"),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemeta"),
		kong.Description("Find the title, site name and description of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagemeta --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(configPath(cli.Config))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	deps.Config = cfg

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose || cmd == "serve" {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}
	deps.Logger = logger

	if needsDB(cmd, cli) {
		dbPath := m.DBPath
		if dbPath == "" {
			dbPath = cfg.Database
		}
		if dbPath == "" {
			dbPath = defaultDBPath()
		}

		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGEMETA_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		m.Inspections = pmslog.NewLoggingInspectionService(sqlite.NewInspectionService(m.DB), logger)
		deps.Inspections = m.Inspections
	}

	switch cmd {
	case "inspect", "file", "serve":
		inspector, err := newInspector(cfg)
		if err != nil {
			return err
		}
		deps.Inspector = inspector
		deps.XHTMLParser = etree.NewParser()
	}

	// Only commands that touch the network get a fetcher.
	switch cmd {
	case "inspect", "serve":
		timeout := cfg.Timeout
		if cmd == "inspect" && cli.Inspect.Timeout > 0 {
			timeout = cli.Inspect.Timeout
		}

		var fetcher pagemeta.Fetcher
		if cmd == "inspect" && cli.Inspect.Browser {
			rf, err := rod.NewFetcher(
				rod.WithFetchTimeout(timeout),
				rod.WithUserAgent(cfg.UserAgent),
				rod.WithMaxPages(cfg.Browser.MaxPages),
			)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rf
		} else {
			fetcher = pmhttp.NewFetcher(pmhttp.WithTimeout(timeout), pmhttp.WithUserAgent(cfg.UserAgent))
		}
		defer fetcher.Close()

		inspector := deps.Inspector
		inspector.Fetcher = pmslog.NewLoggingFetcher(fetcher, logger)
		inspector.RateLimiter = inspect.NewDomainLimiter(cfg.RateLimit)
		inspector.OnRetry = func(url string, attempt int, err error) {
			logger.Warn("retry", "url", url, "attempt", attempt, "err", err)
		}
		if cfg.RespectRobots && !(cmd == "inspect" && cli.Inspect.IgnoreRobots) {
			inspector.Robots = pmslog.NewLoggingRobotsChecker(robots.NewChecker(nil, cfg.UserAgent), logger)
		}

		deps.Sitemaps = pmslog.NewLoggingSitemapService(
			pmhttp.NewSitemapService(&http.Client{Timeout: timeout}, pmhttp.WithUserAgent(cfg.UserAgent)),
			logger,
		)
	}

	return kongCtx.Run(deps)
}

// newInspector builds an Inspector without a fetcher from cfg.
func newInspector(cfg *Config) (*inspect.Inspector, error) {
	var opts []lingua.Option
	if len(cfg.Languages) > 0 {
		languages, err := lingua.ParseLanguages(cfg.Languages)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lingua.WithLanguages(languages...))
	}

	var extractor pagemeta.Extractor = trafilatura.NewExtractor()
	if cfg.Extractor == ExtractorReadability {
		extractor = readability.NewExtractor()
	}

	return &inspect.Inspector{
		Parser:      goquery.NewParser(),
		Extractor:   extractor,
		Converter:   htmltomarkdown.NewConverter(),
		Language:    lingua.NewDetector(opts...),
		Concurrency: cfg.Concurrency,
	}, nil
}

// needsDB reports whether cmd reads or writes stored inspections.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "history", "show", "delete", "serve":
		return true
	case "inspect":
		return cli.Inspect.Save || cli.Inspect.SkipSeen
	case "file":
		return cli.File.Save
	}
	return false
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagemeta.db"
	}
	return filepath.Join(home, ".pagemeta", "pagemeta.db")
}
