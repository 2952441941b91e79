package gemlog

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mk270/gemfeed2atom/pkg/feed"
	"github.com/mk270/gemfeed2atom/pkg/providers"
)

// ProviderName is the registry key of the gemlog provider
const ProviderName = "gemlog"

// StdoutPath selects standard output as the feed destination
const StdoutPath = "-"

// Config describes one gemlog
type Config struct {
	BaseURL string
	FeedDir string
	Title   string
}

// Provider implements the FeedProvider interface for a gemlog directory
type Provider struct {
	Config Config
}

func init() {
	providers.MustRegister(ProviderName, &providers.ProviderInfo{
		Name:        "Gemlog",
		Description: "Atom feed of the most recent posts in a gemlog directory",
		Version:     feed.GeneratorVersion,
		Factory: func(config any) (providers.FeedProvider, error) {
			switch cfg := config.(type) {
			case *Config:
				return NewProvider(*cfg), nil
			case Config:
				return NewProvider(cfg), nil
			default:
				return nil, fmt.Errorf("invalid config type for %s provider: %T", ProviderName, config)
			}
		},
	})
}

// NewProvider creates a new gemlog provider
func NewProvider(cfg Config) *Provider {
	return &Provider{Config: cfg}
}

// BuildFeed implements the FeedProvider interface
func (p *Provider) BuildFeed() (*feed.AtomFeed, error) {
	return BuildFeed(p.Config.BaseURL, p.Config.FeedDir, p.Config.Title)
}

// GenerateFeed builds the feed and writes it to outfile, or to standard
// output when outfile is empty or "-". Nothing is written on error.
func (p *Provider) GenerateFeed(outfile string) error {
	slog.Debug("Generating gemlog feed", "dir", p.Config.FeedDir, "base_url", p.Config.BaseURL)

	f, err := p.BuildFeed()
	if err != nil {
		return err
	}

	if outfile == "" || outfile == StdoutPath {
		return feed.Write(os.Stdout, f)
	}

	if err := feed.SaveToFile(f, outfile); err != nil {
		return err
	}

	if md := feed.GetMetadata(f); md != nil {
		slog.Debug("Feed metadata", "entries", md.ItemCount, "oldest", md.OldestItem, "newest", md.NewestItem)
	}
	return nil
}
