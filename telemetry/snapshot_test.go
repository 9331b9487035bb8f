package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		Seed:      42,
		Frame:     1000,
		Label:     "strong gust",
		SimTime:   16.5,
		ViewportW: 1280,
		ViewportH: 720,
		Ribbon: RibbonState{
			Speed:          0.14,
			TwistSpeed:     0.05,
			TwistAmplitude: 0.8,
			FlowFrequency:  0.4,
			BaseColor:      "#f6f0e9",
			GlowColor:      "#fdf3e3",
		},
		Influence: InfluenceState{TargetX: 0.3, CurrentX: 0.25, ScrollTarget: 0.5, ScrollCurrent: 0.4},
		Breeze:    BreezeState{PhaseX: 12.1, GustDuration: 3, GustElapsed: 1.5, GustStrength: 0.4},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	if filepath.Base(path) != "snapshot_1000_strong_gust.json" {
		t.Errorf("unexpected filename: %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("snapshot file not created: %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if *loaded != *snapshot {
		t.Errorf("loaded snapshot differs:\n got %+v\nwant %+v", *loaded, *snapshot)
	}
}

func TestSnapshotUnlabelledFilename(t *testing.T) {
	path, err := SaveSnapshot(&Snapshot{Version: SnapshotVersion, Frame: 7}, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_7.json" {
		t.Errorf("unexpected filename: %s", filepath.Base(path))
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version mismatch error")
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
