// Package main provides the CLI entry point for gemfeed2atom.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/mk270/gemfeed2atom/internal/config"
	"github.com/mk270/gemfeed2atom/internal/gemlog"
	"github.com/mk270/gemfeed2atom/pkg/feed"
	"github.com/mk270/gemfeed2atom/pkg/preview"
	"github.com/mk270/gemfeed2atom/pkg/providers"
	"github.com/mk270/gemfeed2atom/pkg/urlutils"
)

// SiteFlags identify a single gemlog
type SiteFlags struct {
	BaseURL string `name:"base-url" help:"The base URL for the feed; use a trailing slash for best results" required:""`
	FeedDir string `help:"The filesystem directory containing the posts" required:""`
	Title   string `help:"The title of the gemlog" required:""`
}

func (s SiteFlags) config() *gemlog.Config {
	return &gemlog.Config{
		BaseURL: s.BaseURL,
		FeedDir: s.FeedDir,
		Title:   s.Title,
	}
}

// configFile supplies flag defaults. Keys nest under the command name:
//
//	generate:
//	  base-url: gemini://example.org/gemlog/
//	  feed-dir: /srv/gemini/gemlog
//	  title: My Gemlog
const configFile = "~/.gemfeed2atom/config.yaml"

type cli struct {
	Debug   bool             `help:"Enable debug logging" default:"false"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Generate struct {
		SiteFlags
		Outfile string `help:"Output file path, - for standard output" short:"o" default:"-"`
	} `cmd:"" default:"withargs" help:"Generate an Atom feed from a gemlog directory. Flags missing from the command line are taken from the generate section of ${config_file} when that file exists."`

	Batch struct {
		Sites string `help:"Site list configuration file" default:"sites.yaml" type:"path"`
	} `cmd:"" help:"Generate feeds for every gemlog in a site list."`

	Preview struct {
		SiteFlags
		Index int `help:"Output XML for specific entry index (0-based) to stdout" default:"-1"`
	} `cmd:"" help:"Preview feed entries interactively. Flags missing from the command line are taken from the preview section of ${config_file} when that file exists."`
}

// CLI structure
var CLI cli

// newParser builds the kong parser, loading flag defaults from configPaths
func newParser(target *cli, configPaths ...string) (*kong.Kong, error) {
	return kong.New(target,
		kong.Name(feed.GeneratorName),
		kong.Description("Generates Atom feeds from gemlog directories."),
		kong.Vars{"version": feed.GeneratorVersion, "config_file": configFile},
		kong.Configuration(kongyaml.Loader, configPaths...),
	)
}

func main() {
	parser, err := newParser(&CLI, configFile)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	switch ctx.Command() {
	case "generate":
		generateFeed(CLI.Generate.config(), CLI.Generate.Outfile)

	case "batch":
		generateBatch(CLI.Batch.Sites)

	case "preview":
		previewFeed(CLI.Preview.config(), CLI.Preview.Index)

	default:
		panic(ctx.Command())
	}
}

// createProvider looks up the gemlog provider in the registry
func createProvider(cfg *gemlog.Config) providers.FeedProvider {
	if !urlutils.HasTrailingSlash(cfg.BaseURL) {
		slog.Warn("Base URL has no trailing slash, entry ids will run into the file name", "base_url", cfg.BaseURL)
	}

	provider, err := providers.CreateProvider(gemlog.ProviderName, cfg)
	if err != nil {
		slog.Error("Failed to create provider", "provider", gemlog.ProviderName, "error", err)
		os.Exit(1)
	}
	return provider
}

// generateFeed writes a single feed and exits non-zero on failure
func generateFeed(cfg *gemlog.Config, outfile string) {
	slog.Debug("Generating feed", "dir", cfg.FeedDir)

	if err := createProvider(cfg).GenerateFeed(outfile); err != nil {
		slog.Error("Failed to generate feed", "dir", cfg.FeedDir, "error", err)
		os.Exit(1)
	}
}

// generateBatch writes a feed for every configured site. A failing site
// does not stop the others, but makes the process exit non-zero.
func generateBatch(path string) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		slog.Error("Failed to load site list", "path", path, "error", err)
		os.Exit(1)
	}

	failed := 0
	for _, site := range cfg.Sites {
		provider := createProvider(&gemlog.Config{
			BaseURL: site.BaseURL,
			FeedDir: site.FeedDir,
			Title:   site.Title,
		})

		if err := provider.GenerateFeed(site.OutputPath()); err != nil {
			slog.Error("Failed to generate feed", "site", site.Label(), "error", err)
			failed++
			continue
		}
		slog.Info("Generated feed", "site", site.Label(), "path", site.OutputPath())
	}

	if failed > 0 {
		slog.Error("Batch finished with failures", "failed", failed, "total", len(cfg.Sites))
		os.Exit(1)
	}
}

// previewFeed shows the feed entries in a TUI, or prints one entry's XML
func previewFeed(cfg *gemlog.Config, index int) {
	slog.Debug("Previewing feed", "dir", cfg.FeedDir)

	f, err := createProvider(cfg).BuildFeed()
	if err != nil {
		slog.Error("Failed to build feed", "dir", cfg.FeedDir, "error", err)
		os.Exit(1)
	}

	// If index is specified, output XML directly to stdout
	if index >= 0 {
		if index >= len(f.Entries) {
			slog.Error("Index out of range", "index", index, "total", len(f.Entries))
			os.Exit(1)
		}
		fmt.Print(preview.FormatXMLEntry(f.Entries[index]))
		return
	}

	if err := preview.Run(f); err != nil {
		slog.Error("Preview failed", "error", err)
		os.Exit(1)
	}
}
