package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/inspect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger
	Config *Config

	Inspector   *inspect.Inspector
	XHTMLParser pagemeta.Parser
	Inspections pagemeta.InspectionService
	Sitemaps    pagemeta.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to a YAML config file" type:"path"`
	Verbose bool   `short:"v" help:"Log fetches and storage operations to stderr"`

	Inspect InspectCmd `cmd:"" help:"Fetch pages and print their title, site name and description"`
	File    FileCmd    `cmd:"" help:"Inspect a saved HTML file"`
	History HistoryCmd `cmd:"" help:"List stored inspections"`
	Show    ShowCmd    `cmd:"" help:"Show a stored inspection"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored inspection"`
	Serve   ServeCmd   `cmd:"" help:"Serve the inspection API over HTTP"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	URLs         []string      `arg:"" name:"url" help:"Page URLs, or site URLs with --sitemap"`
	Browser      bool          `short:"b" help:"Render pages in headless Chrome before inspecting"`
	Content      bool          `help:"Extract the main content as Markdown"`
	Save         bool          `short:"s" help:"Store inspections in the database"`
	JSON         bool          `help:"Print one JSON object per page"`
	Concurrency  int           `short:"c" help:"Concurrent page limit"`
	Timeout      time.Duration `short:"t" help:"Fetch timeout per page"`
	Sitemap      bool          `help:"Inspect every page listed in each site's sitemaps"`
	Include      []string      `short:"I" help:"With --sitemap, keep URLs matching this regex (repeatable)"`
	Exclude      []string      `short:"X" help:"With --sitemap, drop URLs matching this regex (repeatable)"`
	SkipSeen     bool          `help:"Skip URLs that already have a stored inspection"`
	IgnoreRobots bool          `help:"Do not consult robots.txt"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	Path    string `arg:"" help:"HTML file to inspect, or - for stdin"`
	URL     string `short:"u" help:"URL the file was downloaded from"`
	XHTML   bool   `help:"Parse as XHTML and query with element paths"`
	Content bool   `help:"Extract the main content as Markdown"`
	Save    bool   `short:"s" help:"Store the inspection in the database (requires --url)"`
	JSON    bool   `help:"Print the inspection as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL    string `short:"u" help:"Only list inspections of this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of inspections to list"`
	Offset int    `help:"Number of inspections to skip"`
	JSON   bool   `help:"Print inspections as JSON"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Inspection ID"`
	JSON bool   `help:"Print the inspection as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Inspection ID"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Listen string `short:"l" help:"Address to listen on (default :8080)"`
	Save   bool   `short:"s" help:"Store every inspection the API performs"`
}
