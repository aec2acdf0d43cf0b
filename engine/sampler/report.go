package sampler

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/Carmen-Shannon/oxy-scroll/engine/camera"
)

// Report summarizes a sampled path.
type Report struct {
	Samples  int
	Approach int
	Orbit    int

	PivotEnabled  bool
	PivotLimit    float64
	ContinuityGap float64

	// MonotonicApproach is true when x never reverses direction across approach samples.
	MonotonicApproach bool

	MinPosition [3]float64
	MaxPosition [3]float64
	MinLookAtX  float64
	MaxLookAtX  float64
	MinBlend    float64
	MaxBlend    float64
}

// Analyze builds a Report for samples taken from cfg.
//
// Parameters:
//   - cfg: the config the samples were evaluated with
//   - samples: the sampled poses in offset order
//
// Returns:
//   - Report: the path summary
func Analyze(cfg camera.ScrollConfig, samples []Sample) Report {
	r := Report{
		Samples:           len(samples),
		PivotEnabled:      cfg.PivotEnabled(),
		PivotLimit:        cfg.PivotLimit(),
		ContinuityGap:     cfg.ContinuityGap(),
		MonotonicApproach: true,
		MinLookAtX:        math.Inf(1),
		MaxLookAtX:        math.Inf(-1),
		MinBlend:          math.Inf(1),
		MaxBlend:          math.Inf(-1),
	}
	for i := range 3 {
		r.MinPosition[i] = math.Inf(1)
		r.MaxPosition[i] = math.Inf(-1)
	}

	var prevX, prevDir float64
	havePrev := false
	for _, s := range samples {
		p := s.Pose
		for i := range 3 {
			r.MinPosition[i] = math.Min(r.MinPosition[i], p.Position[i])
			r.MaxPosition[i] = math.Max(r.MaxPosition[i], p.Position[i])
		}
		r.MinLookAtX = math.Min(r.MinLookAtX, p.LookAt.X())
		r.MaxLookAtX = math.Max(r.MaxLookAtX, p.LookAt.X())

		if p.Regime == camera.RegimeOrbit {
			r.Orbit++
			f := cfg.BlendFactor(p.Position.X())
			r.MinBlend = math.Min(r.MinBlend, f)
			r.MaxBlend = math.Max(r.MaxBlend, f)
			continue
		}

		r.Approach++
		x := p.Position.X()
		if havePrev {
			if d := x - prevX; d != 0 {
				dir := math.Copysign(1, d)
				if prevDir != 0 && dir != prevDir {
					r.MonotonicApproach = false
				}
				prevDir = dir
			}
		}
		prevX, havePrev = x, true
	}
	if r.Orbit == 0 {
		r.MinBlend, r.MaxBlend = 0, 0
	}
	return r
}

// Log writes the report through the standard logger.
func (r Report) Log() {
	log.Printf("[Sampler] %d samples (%d approach, %d orbit)", r.Samples, r.Approach, r.Orbit)
	if r.PivotEnabled {
		log.Printf("[Sampler] pivot limit %.6g, continuity gap %.3g", r.PivotLimit, r.ContinuityGap)
	} else {
		log.Printf("[Sampler] pivot disabled")
	}
	log.Printf("[Sampler] x [%.6g, %.6g] y [%.6g, %.6g] z [%.6g, %.6g]",
		r.MinPosition[0], r.MaxPosition[0], r.MinPosition[1], r.MaxPosition[1], r.MinPosition[2], r.MaxPosition[2])
	log.Printf("[Sampler] look-at x [%.6g, %.6g], blend [%.3g, %.3g], monotonic approach %t",
		r.MinLookAtX, r.MaxLookAtX, r.MinBlend, r.MaxBlend, r.MonotonicApproach)
}

var csvHeader = []string{"offset", "x", "y", "z", "look_x", "look_y", "look_z", "regime"}

// WriteCSV writes one row per sample with a header row.
//
// Parameters:
//   - w: destination
//   - samples: the sampled poses
//
// Returns:
//   - error: the first write error
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, len(csvHeader))
	for _, s := range samples {
		row[0] = formatFloat(s.Offset)
		for i := range 3 {
			row[1+i] = formatFloat(s.Pose.Position[i])
			row[4+i] = formatFloat(s.Pose.LookAt[i])
		}
		row[7] = s.Pose.Regime.String()
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("sampler: write row at offset %g: %w", s.Offset, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
