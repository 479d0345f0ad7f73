// Package aggregate builds the view structures the dashboard renders:
// status/stage/priority distributions, the weekly cumulative trend,
// per-group progress ratios, and the scalar KPI summary. Every function
// is pure and defensive against empty input.
package aggregate

import "github.com/yavdigital/taskmaster/internal/task"

// Segment is one labeled bucket of a distribution.
type Segment struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatusOverview feeds the gauge chart. Segments is NOT a strict
// partition: the Atrasadas segment overlays tasks that also appear in the
// Pendente or Em andamento segments. That double counting is the
// original attention overlay, kept on purpose.
type StatusOverview struct {
	Segments           []Segment `json:"segments"`
	Summary            []Segment `json:"summary"`
	ProgressPercentage float64   `json:"progress_percentage"`
}

// StatusDistribution computes the overall status gauge for a (usually
// filtered) task collection.
func StatusDistribution(tasks []task.Task) StatusOverview {
	var completed, inProgress, pending, overdue int
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			completed++
		case task.StatusInProgress:
			inProgress++
		case task.StatusPending:
			pending++
		}
		if t.Overdue && t.Status != task.StatusCompleted {
			overdue++
		}
	}

	denominator := completed + inProgress + pending + overdue
	var progress float64
	if denominator > 0 {
		progress = float64(completed) / float64(denominator) * 100
	}

	var segments []Segment
	if completed > 0 {
		segments = append(segments, Segment{Key: task.StatusCompleted, Label: "Finalizadas", Count: completed})
	}
	if inProgress > 0 {
		segments = append(segments, Segment{Key: task.StatusInProgress, Label: "Em Andamento", Count: inProgress})
	}
	if pending > 0 {
		segments = append(segments, Segment{Key: task.StatusPending, Label: "Pendentes", Count: pending})
	}
	if overdue > 0 {
		segments = append(segments, Segment{Key: "Atrasada", Label: "Atrasadas", Count: overdue})
	}

	// Renderers never special-case zero-length input: non-empty
	// collections with no qualifying status collapse into one bucket,
	// empty collections get a placeholder.
	if len(segments) == 0 {
		if len(tasks) > 0 {
			segments = append(segments, Segment{Key: "other", Label: "Outro Status", Count: len(tasks)})
		} else {
			segments = append(segments, Segment{Key: "empty", Label: task.StatusUndefined, Count: 1})
		}
	}

	summary := []Segment{
		{Key: "total", Label: "Total Tarefas", Count: len(tasks)},
		{Key: task.StatusCompleted, Label: "Finalizadas", Count: completed},
		{Key: task.StatusInProgress, Label: "Em Andamento", Count: inProgress},
		{Key: task.StatusPending, Label: "Pendentes", Count: pending},
		{Key: "Atrasada", Label: "Atrasadas", Count: overdue},
	}

	return StatusOverview{
		Segments:           segments,
		Summary:            summary,
		ProgressPercentage: progress,
	}
}
