package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Ribbon.Segments != 260 {
		t.Errorf("expected 260 segments, got %d", cfg.Ribbon.Segments)
	}
	if cfg.Influence.ScrollAlpha != 0.08 {
		t.Errorf("expected scroll alpha 0.08, got %f", cfg.Influence.ScrollAlpha)
	}
	if cfg.Deform.MaxFrameDelta != 0.048 {
		t.Errorf("expected max frame delta 0.048, got %f", cfg.Deform.MaxFrameDelta)
	}

	if cfg.Derived.Columns != 261 || cfg.Derived.Rows != 31 {
		t.Errorf("expected 261x31 grid, got %dx%d", cfg.Derived.Columns, cfg.Derived.Rows)
	}
	if cfg.Derived.VertexCount != 261*31 {
		t.Errorf("expected %d vertices, got %d", 261*31, cfg.Derived.VertexCount)
	}
	if math.Abs(cfg.Derived.PlaneLength-32*1.45) > 1e-9 {
		t.Errorf("expected plane length %f, got %f", 32*1.45, cfg.Derived.PlaneLength)
	}
	if math.Abs(cfg.Derived.FovYRadians-math.Pi/4) > 1e-9 {
		t.Errorf("expected fov pi/4, got %f", cfg.Derived.FovYRadians)
	}
}

func TestLoadOverridesMergeWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("ribbon:\n  segments: 64\nfallback:\n  policy: surface-only\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}

	if cfg.Ribbon.Segments != 64 {
		t.Errorf("expected override segments 64, got %d", cfg.Ribbon.Segments)
	}
	// Untouched fields keep their defaults
	if cfg.Ribbon.HeightSegments != 30 {
		t.Errorf("expected default height segments 30, got %d", cfg.Ribbon.HeightSegments)
	}
	if cfg.Fallback.Policy != "surface-only" {
		t.Errorf("expected surface-only policy, got %q", cfg.Fallback.Policy)
	}
	if cfg.Derived.Columns != 65 {
		t.Errorf("expected derived columns 65, got %d", cfg.Derived.Columns)
	}
}

func TestLoadRejectsOversizedGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.yaml")
	data := []byte("ribbon:\n  segments: 1000\n  height_segments: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for grid exceeding uint16 indices")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestTransformRotation(t *testing.T) {
	tc := TransformConfig{RotationDivX: 2, RotationDivY: 0, RotationDivZ: 4}
	rot := tc.Rotation()
	if math.Abs(rot[0]-math.Pi/2) > 1e-12 || rot[1] != 0 || math.Abs(rot[2]-math.Pi/4) > 1e-12 {
		t.Errorf("unexpected rotation %v", rot)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := MustLoad("")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Material.BaseColor != cfg.Material.BaseColor {
		t.Errorf("base colour changed: %q -> %q", cfg.Material.BaseColor, reloaded.Material.BaseColor)
	}
}
