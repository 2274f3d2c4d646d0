package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/adaptive"
	"github.com/fwojciec/adaptext/fs"
	"github.com/fwojciec/adaptext/goquery"
	adapthttp "github.com/fwojciec/adaptext/http"
	"github.com/fwojciec/adaptext/htmltomarkdown"
	"github.com/fwojciec/adaptext/learn"
	adaptslog "github.com/fwojciec/adaptext/slog"
	"github.com/fwojciec/adaptext/sqlite"
	"github.com/fwojciec/adaptext/trafilatura"
	"github.com/fwojciec/adaptext/yaml"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Learner  adaptext.SelectorLearner
	Articles adaptext.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adaptext"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'adaptext --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.LogFile, cli.Verbose)

	// Open database
	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ADAPTEXT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()
	deps.DB = m.DB

	// Learning state lives in SQLite unless a state file was requested.
	var store adaptext.LearningStore = sqlite.NewLearningStore(m.DB)
	if cli.StateFile != "" {
		store = fs.NewStore(cli.StateFile)
	}
	store = adaptslog.NewLoggingStore(store, deps.Logger)

	learner := learn.NewLearner(ctx, store, learn.WithLogger(deps.Logger))
	deps.Snapshot = learner.Snapshot
	m.Learner = learner
	if cli.Verbose {
		m.Learner = adaptslog.NewLoggingLearner(m.Learner, deps.Logger)
	}
	m.Articles = sqlite.NewArticleService(m.DB)

	deps.Learner = m.Learner
	deps.Articles = m.Articles

	// Preset selector tables: embedded defaults or a user-supplied file.
	if cli.Presets != "" {
		presets, err := yaml.LoadPresetService(cli.Presets)
		if err != nil {
			return fmt.Errorf("failed to load presets from %q: %w", cli.Presets, err)
		}
		deps.Presets = presets
	} else {
		deps.Presets = yaml.NewPresetService()
	}

	// The extract command needs the full parsing pipeline.
	if cmd == "extract" {
		fetcher := adapthttp.NewFetcher(
			adapthttp.WithRateLimit(cli.Extract.RateLimit),
		)
		defer fetcher.Close()

		opts := []adaptive.Option{
			adaptive.WithBootstrap(trafilatura.NewExtractor()),
			adaptive.WithConverter(htmltomarkdown.NewConverter()),
			adaptive.WithLogger(deps.Logger),
		}
		if !cli.Extract.NoStore {
			opts = append(opts, adaptive.WithArticleService(m.Articles))
		}

		deps.Parser = adaptive.NewParser(fetcher, goquery.NewExtractor(), m.Learner, deps.Presets, opts...)
	}

	return kongCtx.Run(deps)
}

// newLogger builds the process logger. With a log file set, output rotates
// via lumberjack instead of going to stderr.
func newLogger(stderr io.Writer, logFile string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := stderr
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("ADAPTEXT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "adaptext.db"
	}
	dir := filepath.Join(home, ".adaptext")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "adaptext.db")
}
