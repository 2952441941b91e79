package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// siteFixture mirrors the on-disk layout of a site entry
type siteFixture struct {
	Name    string `yaml:"name,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	FeedDir string `yaml:"feed_dir,omitempty"`
	Title   string `yaml:"title,omitempty"`
	Outfile string `yaml:"outfile,omitempty"`
}

func writeConfig(t *testing.T, sites []siteFixture) string {
	t.Helper()

	data, err := yaml.Marshal(map[string][]siteFixture{"sites": sites})
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sites.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, []siteFixture{
		{
			Name:    "journal",
			BaseURL: "gemini://example.org/journal/",
			FeedDir: "/srv/gemini/journal",
			Title:   "My Journal",
		},
		{
			Name:    "recipes",
			BaseURL: "gemini://example.org/recipes/",
			FeedDir: "/srv/gemini/recipes",
			Title:   "Recipes",
			Outfile: "/var/www/recipes.xml",
		},
	})

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(config.Sites) != 2 {
		t.Fatalf("LoadConfig() loaded %d sites, want 2", len(config.Sites))
	}

	journal := config.Sites[0]
	if journal.BaseURL != "gemini://example.org/journal/" || journal.Title != "My Journal" {
		t.Errorf("journal = %+v", journal)
	}
	if got, want := journal.OutputPath(), filepath.Join("/srv/gemini/journal", "atom.xml"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	if got := config.Sites[1].OutputPath(); got != "/var/www/recipes.xml" {
		t.Errorf("OutputPath() = %q, want explicit outfile", got)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("sites: [\n  - name: {"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for invalid YAML")
	}
}

func TestLoadConfig_ValidationError(t *testing.T) {
	path := writeConfig(t, []siteFixture{{Name: "no-url", FeedDir: "/srv", Title: "T"}})

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("LoadConfig() error = %v, want ErrMissingField", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Site{Name: "a", BaseURL: "gemini://a/", FeedDir: "/a", Title: "A"}

	tests := []struct {
		name    string
		sites   []Site
		wantErr error
	}{
		{name: "valid", sites: []Site{valid}},
		{name: "no sites", sites: nil, wantErr: ErrNoSites},
		{
			name:    "missing base url",
			sites:   []Site{{FeedDir: "/a", Title: "A"}},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing feed dir",
			sites:   []Site{{BaseURL: "gemini://a/", Title: "A"}},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing title",
			sites:   []Site{{BaseURL: "gemini://a/", FeedDir: "/a"}},
			wantErr: ErrMissingField,
		},
		{
			name:    "relative base url",
			sites:   []Site{{BaseURL: "/posts/", FeedDir: "/a", Title: "A"}},
			wantErr: ErrInvalidURL,
		},
		{
			name:    "duplicate names",
			sites:   []Site{valid, valid},
			wantErr: ErrDuplicateSite,
		},
		{
			name: "unnamed sites may repeat",
			sites: []Site{
				{BaseURL: "gemini://a/", FeedDir: "/a", Title: "A"},
				{BaseURL: "gemini://b/", FeedDir: "/b", Title: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{Sites: tt.sites}).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSite_Label(t *testing.T) {
	if got := (Site{Name: "journal", FeedDir: "/srv/j"}).Label(); got != "journal" {
		t.Errorf("Label() = %q, want name", got)
	}
	if got := (Site{FeedDir: "/srv/j"}).Label(); got != "/srv/j" {
		t.Errorf("Label() = %q, want feed dir", got)
	}
}
