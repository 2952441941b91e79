// Package config loads the multi-gemlog batch configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mk270/gemfeed2atom/pkg/filesystem"
	"github.com/mk270/gemfeed2atom/pkg/urlutils"
)

// DefaultPath is the batch configuration file used when none is given
const DefaultPath = "sites.yaml"

// DefaultOutfile is the feed file name written into a site's directory
const DefaultOutfile = "atom.xml"

// Validation errors
var (
	ErrNoSites       = errors.New("no sites configured")
	ErrMissingField  = errors.New("missing required field")
	ErrDuplicateSite = errors.New("duplicate site name")
	ErrInvalidURL    = errors.New("base_url is not an absolute URL")
)

// Site describes a single gemlog to publish a feed for
type Site struct {
	Name    string `mapstructure:"name"`     // Label used in logs
	BaseURL string `mapstructure:"base_url"` // Published URL of the directory, with trailing slash
	FeedDir string `mapstructure:"feed_dir"` // Directory holding the posts
	Title   string `mapstructure:"title"`    // Feed title
	Outfile string `mapstructure:"outfile"`  // Optional output path
}

// Config holds the batch configuration
type Config struct {
	Sites []Site `mapstructure:"sites"`
}

// OutputPath returns where the site's feed is written
func (s Site) OutputPath() string {
	if s.Outfile != "" {
		return s.Outfile
	}
	return filepath.Join(s.FeedDir, DefaultOutfile)
}

// Label names the site in logs, falling back to its directory
func (s Site) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.FeedDir
}

// LoadConfig loads and validates the configuration from a file.
// Relative paths are looked up in the working directory first, then next
// to the executable.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	path = filesystem.ResolvePath(path)

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that every site has the fields needed to build a feed
func (c *Config) Validate() error {
	if len(c.Sites) == 0 {
		return ErrNoSites
	}

	seen := make(map[string]bool, len(c.Sites))
	for i, site := range c.Sites {
		switch {
		case site.BaseURL == "":
			return fmt.Errorf("site %d: %w: base_url", i, ErrMissingField)
		case site.FeedDir == "":
			return fmt.Errorf("site %d: %w: feed_dir", i, ErrMissingField)
		case site.Title == "":
			return fmt.Errorf("site %d: %w: title", i, ErrMissingField)
		case !urlutils.IsValidURL(site.BaseURL):
			return fmt.Errorf("site %d: %w: %s", i, ErrInvalidURL, site.BaseURL)
		}

		if site.Name == "" {
			continue
		}
		if seen[site.Name] {
			return fmt.Errorf("site %d: %w: %s", i, ErrDuplicateSite, site.Name)
		}
		seen[site.Name] = true
	}

	return nil
}
