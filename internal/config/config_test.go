package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Strict {
		t.Error("Default().Strict should be false")
	}
	if cfg.Color != nil {
		t.Error("Default().Color should be nil (auto-detect)")
	}
	if cfg.DebugScopes {
		t.Error("Default().DebugScopes should be false")
	}
	if cfg.Entry != "" {
		t.Errorf("Default().Entry = %q, want empty", cfg.Entry)
	}
}

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte(`strict: true`), "decafc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict {
		t.Error("expected Strict to be true")
	}
}

func TestParse_AllFields(t *testing.T) {
	yaml := `
strict: true
color: false
debugScopes: true
entry: src/Main.decaf
`
	cfg, err := Parse([]byte(yaml), "decafc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict {
		t.Error("expected Strict true")
	}
	if cfg.Color == nil || *cfg.Color != false {
		t.Errorf("Color = %v, want pointer to false", cfg.Color)
	}
	if !cfg.DebugScopes {
		t.Error("expected DebugScopes true")
	}
	if cfg.Entry != "src/Main.decaf" {
		t.Errorf("Entry = %q, want src/Main.decaf", cfg.Entry)
	}
}

func TestParse_ColorUnset_StaysNil(t *testing.T) {
	cfg, err := Parse([]byte(`strict: true`), "decafc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != nil {
		t.Error("Color should remain nil when absent from the document, to preserve auto-detect")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("strict: [this is not a bool"), "decafc.yaml")
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoad_ReadsAndParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decafc.yaml")
	if err := os.WriteFile(path, []byte("strict: true\nentry: Main.decaf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict || cfg.Entry != "Main.decaf" {
		t.Errorf("Load() = %+v, want Strict=true Entry=Main.decaf", cfg)
	}
}

func TestFind_WalksUpToAncestor(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "decafc.yaml")
	if err := os.WriteFile(cfgPath, []byte("strict: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(deep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("Find(%q) = %q, want %q", deep, found, cfgPath)
	}
}

func TestFind_PrefersNearestAncestor(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	rootCfg := filepath.Join(root, "decafc.yaml")
	subCfg := filepath.Join(sub, "decafc.yaml")
	if err := os.WriteFile(rootCfg, []byte("strict: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(subCfg, []byte("strict: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := Find(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != subCfg {
		t.Errorf("Find(%q) = %q, want the nearer %q, not the root's", sub, found, subCfg)
	}
}

func TestFind_NoConfigAnywhere(t *testing.T) {
	// An isolated temp directory with no decafc.yaml in it or any of its
	// parents up to the filesystem root is not guaranteed by t.TempDir()
	// alone (a real ancestor could theoretically carry one), but in
	// practice CI and dev sandboxes never place one above os.TempDir().
	dir := t.TempDir()
	found, err := Find(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Errorf("Find(%q) = %q, want empty when no ancestor has a config", dir, found)
	}
}

func TestLoadOrDefault_NoConfigFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Strict || cfg.DebugScopes || cfg.Entry != "" {
		t.Errorf("LoadOrDefault() with no file on disk = %+v, want the zero Default()", cfg)
	}
}

func TestLoadOrDefault_LoadsFoundConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decafc.yaml")
	if err := os.WriteFile(path, []byte("debugScopes: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.DebugScopes {
		t.Error("expected the on-disk decafc.yaml to be loaded, not the default")
	}
}
