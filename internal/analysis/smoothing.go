package analysis

import (
	"math"

	"github.com/tmcclure54/BE-and-CV-data-plotter-V1/internal/parser"
)

// RemoveVoltageJumps drops samples whose voltage step from the immediate
// predecessor is an outlier against the file's own typical step size.
// Sweep instruments occasionally emit a spurious sample where the sweep
// direction glitches; the threshold is self-calibrating, so no fixed
// voltage unit is assumed.
//
// The typical step is the mean of all non-zero absolute first differences,
// and a row is removed when its difference strictly exceeds
// thresholdMultiplier times that. Single pass: removed rows do not trigger
// a recomputation of the typical step.
//
// The input series is not modified.
func RemoveVoltageJumps(series *parser.CVSeries, thresholdMultiplier float64) *parser.CVSeries {
	n := series.Len()
	diffs := make([]float64, n)
	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		if i == 0 {
			// The first sample has no predecessor and is never an outlier.
			diffs[i] = math.NaN()
			continue
		}
		d := math.Abs(series.Voltage[i] - series.Voltage[i-1])
		diffs[i] = d
		// NaN voltages (unparseable cells) give NaN diffs; they must not
		// poison the typical-step mean. They never classify as outliers
		// either, since NaN comparisons below are false.
		if d != 0 && !math.IsNaN(d) {
			sum += d
			count++
		}
	}

	// When every difference is zero the typical step is undefined; the NaN
	// threshold makes every comparison below false, so all rows are kept.
	avgStep := math.NaN()
	if count > 0 {
		avgStep = sum / float64(count)
	}
	threshold := thresholdMultiplier * avgStep

	filtered := &parser.CVSeries{
		Voltage:  make([]float64, 0, n),
		Current:  make([]float64, 0, n),
		Headers:  series.Headers,
		Warnings: series.Warnings,
	}
	for i := 0; i < n; i++ {
		if diffs[i] > threshold {
			continue
		}
		filtered.Voltage = append(filtered.Voltage, series.Voltage[i])
		filtered.Current = append(filtered.Current, series.Current[i])
	}
	return filtered
}
