package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/adaptext"
	"github.com/fwojciec/adaptext/adaptive"
	"github.com/fwojciec/adaptext/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Learner  adaptext.SelectorLearner
	Articles adaptext.ArticleService
	Presets  adaptext.PresetService
	Parser   *adaptive.Parser
	Snapshot func() *adaptext.LearningState
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `help:"Database path" env:"ADAPTEXT_DB"`
	StateFile string `help:"Keep learning state in a JSON file instead of the database"`
	Presets   string `help:"Load preset selector tables from a YAML file"`
	LogFile   string `help:"Write logs to a rotating file instead of stderr"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	Extract   ExtractCmd   `cmd:"" help:"Fetch a URL and extract an article, learning selectors as needed"`
	Learn     LearnCmd     `cmd:"" help:"Learn selectors for known content on a page"`
	Selectors SelectorsCmd `cmd:"" help:"List learned selectors for a content type"`
	Report    ReportCmd    `cmd:"" help:"Report extraction feedback for a selector"`
	Stats     StatsCmd     `cmd:"" help:"Show learning state statistics"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" help:"Page URLs to extract"`
	NoStore     bool     `help:"Do not persist extracted articles"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	RateLimit   float64  `default:"1" help:"Per-domain requests per second"`
}

// LearnCmd is the "learn" subcommand.
type LearnCmd struct {
	URL    string `arg:"" help:"Page URL to learn from"`
	Type   string `short:"t" required:"" help:"Content type (title, content, author, ...)"`
	Known  string `short:"k" help:"Known correct content to search for"`
	Domain string `help:"Override the domain key (defaults to the URL host)"`
}

// SelectorsCmd is the "selectors" subcommand.
type SelectorsCmd struct {
	Type   string `short:"t" required:"" help:"Content type (title, content, author, ...)"`
	Domain string `help:"Include the domain-specific shortlist"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Selector string `arg:"" help:"CSS selector"`
	Type     string `short:"t" required:"" help:"Content type (title, content, author, ...)"`
	Domain   string `required:"" help:"Domain the selector was used on"`
	Failure  bool   `help:"Report a failure instead of a success"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
