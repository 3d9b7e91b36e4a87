package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testReport() *Report {
	return &Report{
		Effect:    "field",
		Seed:      42,
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Tiers: []Tier{
			{Width: 480, Height: 320, Particles: 30, Frames: 2, Elapsed: 0.001, FPS: 2000, PerFrame: []float64{400, 600}},
			{Width: 1920, Height: 1080, Particles: 100, Frames: 2, Elapsed: 0.004, FPS: 500, PerFrame: []float64{1900, 2100}},
		},
	}
}

func TestWriteFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.json")
	if err := WriteFile(path, testReport()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if r.Effect != "field" {
		t.Errorf("expected effect 'field', got '%s'", r.Effect)
	}
	if r.Seed != 42 {
		t.Errorf("expected seed 42, got %d", r.Seed)
	}
	if len(r.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(r.Tiers))
	}
	if r.Tiers[1].Particles != 100 {
		t.Errorf("expected 100 particles, got %d", r.Tiers[1].Particles)
	}
}

func TestWrite_Keys(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testReport()); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"per_frame_us"`, `"elapsed_seconds"`, `"tiers"`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("expected %s in output", key)
		}
	}
}

func TestSlowest(t *testing.T) {
	tier, ok := testReport().Slowest()
	if !ok || tier.Width != 1920 {
		t.Errorf("expected 1920 tier, got %+v", tier)
	}

	if _, ok := (&Report{}).Slowest(); ok {
		t.Error("expected no tier for empty report")
	}
}

func TestTier(t *testing.T) {
	r := testReport()
	tier, ok := r.Tier(480, 320)
	if !ok || tier.Particles != 30 {
		t.Errorf("expected 480x320 tier with 30 particles, got %+v", tier)
	}
	if _, ok := r.Tier(800, 600); ok {
		t.Error("expected no 800x600 tier")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
