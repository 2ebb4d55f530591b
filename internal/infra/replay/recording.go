// Package replay loads recorded planning-cycle inputs from YAML so a
// drive can be replayed through the scenario manager offline.
package replay

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mobilityos/plansim/internal/domain"
)

// Recording is a named sequence of planning cycles.
type Recording struct {
	Name        string
	Description string
	Cycles      []Cycle
}

// Cycle is one recorded planning cycle: the wall time it ran at, the ego
// planning point, and the full frame input.
type Cycle struct {
	Time  time.Time
	Ego   domain.EgoPoint
	Frame domain.Frame
}

// recordingDoc is the on-disk YAML shape.
type recordingDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	StartTime   time.Time  `yaml:"start_time"`
	Cycles      []cycleDoc `yaml:"cycles"`
}

type cycleDoc struct {
	TimeOffsetSec float64 `yaml:"time_offset_sec"`
	Ego           struct {
		S     float64 `yaml:"s"`
		Speed float64 `yaml:"speed"`
	} `yaml:"ego"`
	ReferenceLine referenceLineDoc `yaml:"reference_line"`
	TrafficLights *detectionDoc    `yaml:"traffic_lights"`
}

type referenceLineDoc struct {
	FrontEdgeS       float64      `yaml:"front_edge_s"`
	Turn             string       `yaml:"turn"`
	FirstEncountered []overlapDoc `yaml:"first_encountered"`
	StopSignOverlaps []overlapDoc `yaml:"stop_sign_overlaps"`
	SignalOverlaps   []overlapDoc `yaml:"signal_overlaps"`
}

type overlapDoc struct {
	Kind   string  `yaml:"kind"`
	ID     string  `yaml:"id"`
	StartS float64 `yaml:"start_s"`
	EndS   float64 `yaml:"end_s"`
}

type detectionDoc struct {
	AgeSec  float64     `yaml:"age_sec"`
	Signals []signalDoc `yaml:"signals"`
}

type signalDoc struct {
	ID         string  `yaml:"id"`
	Color      string  `yaml:"color"`
	Confidence float64 `yaml:"confidence"`
}

// Load reads and converts a recording file.
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return Parse(data)
}

// Parse converts recording YAML into domain frames.
func Parse(data []byte) (*Recording, error) {
	var doc recordingDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse recording: %w", err)
	}
	if len(doc.Cycles) == 0 {
		return nil, fmt.Errorf("parse recording: no cycles")
	}

	start := doc.StartTime
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}

	rec := &Recording{Name: doc.Name, Description: doc.Description}
	for i, c := range doc.Cycles {
		at := start.Add(time.Duration(c.TimeOffsetSec * float64(time.Second)))
		frame, err := c.toFrame(uint32(i), at) //nolint:gosec // cycle count bounded by recording size
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", i, err)
		}
		rec.Cycles = append(rec.Cycles, Cycle{
			Time:  at,
			Ego:   domain.EgoPoint{S: c.Ego.S, Speed: c.Ego.Speed},
			Frame: frame,
		})
	}
	return rec, nil
}

func (c cycleDoc) toFrame(seq uint32, at time.Time) (domain.Frame, error) {
	ref := domain.ReferenceLineInfo{
		FrontEdgeS: c.ReferenceLine.FrontEdgeS,
		Turn:       parseTurn(c.ReferenceLine.Turn),
	}
	for _, o := range c.ReferenceLine.FirstEncountered {
		kind := domain.OverlapKind(o.Kind)
		if o.Kind == "" {
			return domain.Frame{}, fmt.Errorf("first_encountered overlap %q has no kind", o.ID)
		}
		ref.FirstEncountered = append(ref.FirstEncountered, domain.EncounteredOverlap{
			Kind:    kind,
			Overlap: o.toOverlap(),
		})
	}
	for _, o := range c.ReferenceLine.StopSignOverlaps {
		ref.StopSignOverlaps = append(ref.StopSignOverlaps, o.toOverlap())
	}
	for _, o := range c.ReferenceLine.SignalOverlaps {
		ref.SignalOverlaps = append(ref.SignalOverlaps, o.toOverlap())
	}

	frame := domain.Frame{
		SequenceNum:    seq,
		ReferenceLines: []domain.ReferenceLineInfo{ref},
	}
	if d := c.TrafficLights; d != nil {
		det := &domain.TrafficLightDetection{
			Timestamp: at.Add(-time.Duration(d.AgeSec * float64(time.Second))),
		}
		for _, s := range d.Signals {
			det.Signals = append(det.Signals, domain.TrafficSignal{
				ID:         s.ID,
				Color:      domain.SignalColor(s.Color),
				Confidence: s.Confidence,
			})
		}
		frame.TrafficLightDetection = det
	}
	return frame, nil
}

func (o overlapDoc) toOverlap() domain.Overlap {
	return domain.Overlap{ObjectID: o.ID, StartS: o.StartS, EndS: o.EndS}
}

func parseTurn(s string) domain.TurnType {
	switch domain.TurnType(s) {
	case domain.TurnLeft, domain.TurnRight, domain.TurnU:
		return domain.TurnType(s)
	default:
		return domain.TurnNone
	}
}
