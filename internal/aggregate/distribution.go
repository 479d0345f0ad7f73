package aggregate

import "github.com/yavdigital/taskmaster/internal/task"

// StageDistribution counts tasks per workflow stage in first-occurrence
// order. Tasks without a stage land in the "Não definida" bucket.
func StageDistribution(tasks []task.Task) []Segment {
	counts := make(map[string]int)
	var order []string
	for _, t := range tasks {
		stage := t.Stage
		if stage == "" {
			stage = task.UndefinedStage
		}
		if _, seen := counts[stage]; !seen {
			order = append(order, stage)
		}
		counts[stage]++
	}

	segments := make([]Segment, 0, len(order))
	for _, stage := range order {
		segments = append(segments, Segment{Key: stage, Label: stage, Count: counts[stage]})
	}
	return segments
}

// priorityOrder fixes the bucket order of the priority pie.
var priorityOrder = []int{task.PriorityHigh, task.PriorityMedium, task.PriorityLow, task.PriorityNone}

// PriorityDistribution counts tasks per priority label in the fixed
// Alta/Média/Baixa/N/D order. Zero-count buckets are omitted; empty
// input gets an N/D placeholder so the pie always has at least one
// slice. Tasks without a recognized priority count into the N/D bucket.
func PriorityDistribution(tasks []task.Task) []Segment {
	counts := make(map[int]int)
	for _, t := range tasks {
		switch t.Priority {
		case task.PriorityHigh, task.PriorityMedium, task.PriorityLow:
			counts[t.Priority]++
		default:
			counts[task.PriorityNone]++
		}
	}

	var segments []Segment
	for _, p := range priorityOrder {
		if counts[p] == 0 {
			continue
		}
		label := task.PriorityLabel(p)
		segments = append(segments, Segment{Key: label, Label: label, Count: counts[p]})
	}

	if len(segments) == 0 {
		segments = append(segments, Segment{
			Key:   task.StatusUndefined,
			Label: task.StatusUndefined,
			Count: 1,
		})
	}
	return segments
}
