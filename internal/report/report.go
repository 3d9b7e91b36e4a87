// Package report writes benchmark results as JSON.
package report

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

type Tier struct {
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Particles int       `json:"particles"`
	Frames    int       `json:"frames"`
	Elapsed   float64   `json:"elapsed_seconds"`
	FPS       float64   `json:"fps"`
	PerFrame  []float64 `json:"per_frame_us"`
}

type Report struct {
	Effect    string    `json:"effect"`
	Seed      int64     `json:"seed"`
	Timestamp time.Time `json:"timestamp"`
	Tiers     []Tier    `json:"tiers"`
}

// Slowest returns the tier with the lowest frame rate.
func (r *Report) Slowest() (Tier, bool) {
	if len(r.Tiers) == 0 {
		return Tier{}, false
	}
	slowest := r.Tiers[0]
	for _, t := range r.Tiers[1:] {
		if t.FPS < slowest.FPS {
			slowest = t
		}
	}
	return slowest, true
}

// Tier returns the tier measured at the given viewport size.
func (r *Report) Tier(width, height int) (Tier, bool) {
	for _, t := range r.Tiers {
		if t.Width == width && t.Height == height {
			return t, true
		}
	}
	return Tier{}, false
}

func Write(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func WriteFile(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, r); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
