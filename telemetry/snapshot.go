package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the animation state of a renderer at one frame.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Frame   int64 `json:"frame"`

	Label string `json:"label,omitempty"`

	SimTime   float64 `json:"sim_time"`
	ViewportW float64 `json:"viewport_w"`
	ViewportH float64 `json:"viewport_h"`

	Ribbon    RibbonState    `json:"ribbon"`
	Influence InfluenceState `json:"influence"`
	Breeze    BreezeState    `json:"breeze"`
}

// RibbonState holds the live appearance config.
type RibbonState struct {
	Speed          float64 `json:"speed"`
	TwistSpeed     float64 `json:"twist_speed"`
	TwistAmplitude float64 `json:"twist_amplitude"`
	FlowFrequency  float64 `json:"flow_frequency"`
	BaseColor      string  `json:"base_color"`
	GlowColor      string  `json:"glow_color"`
}

// InfluenceState holds pointer and scroll influence.
type InfluenceState struct {
	TargetX       float64 `json:"target_x"`
	TargetY       float64 `json:"target_y"`
	CurrentX      float64 `json:"current_x"`
	CurrentY      float64 `json:"current_y"`
	ScrollTarget  float64 `json:"scroll_target"`
	ScrollCurrent float64 `json:"scroll_current"`
}

// BreezeState holds the breeze phases, drift and gust.
type BreezeState struct {
	PhaseX        float64 `json:"phase_x"`
	PhaseY        float64 `json:"phase_y"`
	DriftX        float64 `json:"drift_x"`
	DriftY        float64 `json:"drift_y"`
	GustDuration  float64 `json:"gust_duration"`
	GustElapsed   float64 `json:"gust_elapsed"`
	GustStrength  float64 `json:"gust_strength"`
	TimeUntilNext float64 `json:"time_until_next"`
}

// SaveSnapshot writes a snapshot to dir and returns the file path.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Label != "" {
		sanitized := strings.ReplaceAll(snapshot.Label, " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
