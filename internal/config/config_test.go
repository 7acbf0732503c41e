package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Linking.MinRelevance != 0.35 {
		t.Errorf("MinRelevance = %v, want 0.35", cfg.Linking.MinRelevance)
	}
	if cfg.Linking.MaxLinksPerDocument != 3 {
		t.Errorf("MaxLinksPerDocument = %d, want 3", cfg.Linking.MaxLinksPerDocument)
	}
	if cfg.Linking.MinParagraphWords != 20 {
		t.Errorf("MinParagraphWords = %d, want 20", cfg.Linking.MinParagraphWords)
	}
	if cfg.Catalog.HostPrefix != "https://gcore.com" {
		t.Errorf("HostPrefix = %q", cfg.Catalog.HostPrefix)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "interlink.yaml")
	yaml := `catalog:
  product_source: products.csv
  learning_source: topics.txt
linking:
  min_relevance: 0.5
  links_per_section: 1
logging:
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Catalog.ProductSource != "products.csv" {
		t.Errorf("ProductSource = %q", cfg.Catalog.ProductSource)
	}
	if cfg.Linking.MinRelevance != 0.5 {
		t.Errorf("MinRelevance = %v, want 0.5", cfg.Linking.MinRelevance)
	}
	if cfg.Linking.LinksPerSection != 1 {
		t.Errorf("LinksPerSection = %d, want 1", cfg.Linking.LinksPerSection)
	}
	if cfg.App.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.App.ConfigFile, path)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	chdir(t, t.TempDir())
	t.Setenv("INTERLINK_PRODUCT_SOURCE", "/srv/sitemap.csv")
	t.Setenv("INTERLINK_PORT", "9090")
	t.Setenv("INTERLINK_CURATED_SOURCE", "/srv/curated.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Catalog.ProductSource != "/srv/sitemap.csv" {
		t.Errorf("ProductSource = %q", cfg.Catalog.ProductSource)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.CuratedSource != "/srv/curated.yaml" {
		t.Errorf("CuratedSource = %q", cfg.Catalog.CuratedSource)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"relevance above one", func(c *Config) { c.Linking.MinRelevance = 1.5 }, true},
		{"negative max links", func(c *Config) { c.Linking.DefaultMaxLinks = -1 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Linking: Linking{MinRelevance: 0.35, MaxLinksPerDocument: 3, DefaultMaxLinks: 5, LinksPerSection: 2},
				Server:  Server{Port: 8080},
				Logging: Logging{Level: "info", Format: "console"},
			}
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) error = %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("Chdir(%q) error = %v", prev, err)
		}
	})
}
