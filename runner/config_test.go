package runner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "flavor: rust\nmax_range_digits: 8\ndisabled_features: [recursion, intersection]\nworkers: 4\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%q) error: %v", path, err)
	}
	if cfg.Flavor != "rust" || cfg.MaxRangeDigits != 8 || cfg.Workers != 4 {
		t.Fatalf("got %+v, want flavor=rust maxRangeDigits=8 workers=4", cfg)
	}
	if len(cfg.DisabledFeatures) != 2 {
		t.Fatalf("got %d disabled features, want 2", len(cfg.DisabledFeatures))
	}
}

func TestLoadConfigRejectsSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("flavor: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected a syntax error for malformed YAML")
	}
}

func TestApplyDefaultsOnlyFillsUnsetFields(t *testing.T) {
	cfg := &fileConfig{Flavor: "python", MaxRangeDigits: 6, Workers: 2}
	opts := &Options{Flavor: "rust"}
	cfg.applyDefaults(opts)
	if opts.Flavor != "rust" {
		t.Fatalf("Flavor = %q, want explicit flag value preserved", opts.Flavor)
	}
	if opts.MaxRangeDigits != 6 || opts.Workers != 2 {
		t.Fatalf("got %+v, want config values for unset fields", opts)
	}
}
