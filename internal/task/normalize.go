package task

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yavdigital/taskmaster/pkg/timeparse"
)

// Mapper turns one raw CSV row into a canonical Task. Each supported
// export schema provides its own mapper; all of them satisfy the same
// contract: never panic outward, mark unrecoverable rows Invalid, run
// derivation before returning.
type Mapper interface {
	// Name identifies the schema in logs and import summaries.
	Name() string
	// Required lists the column headers the import cannot proceed without.
	Required() []string
	// Normalize maps a raw row. ref is the shared reference instant for
	// the whole batch, already truncated to day.
	Normalize(row map[string]string, ref time.Time) Task
}

// DetectSchema sniffs the header set and picks the matching mapper. The
// standard export wins by default so its required-column check produces
// the user-facing error for unrecognized files.
func DetectSchema(headers []string) Mapper {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.TrimSpace(h)] = true
	}
	if !set[colID] && set[clickupColID] {
		return ClickUpMapper{}
	}
	return StandardMapper{}
}

// Standard export column headers. These are a contract with the import
// UI and must not be renamed.
const (
	colID           = "ID da tarefa"
	colTitle        = "Tarefa"
	colStatus       = "Status"
	colResponsible  = "Responsável"
	colStrategy     = "Estratégia"
	colStage        = "Etapa"
	colPriority     = "Prioridade"
	colWorkload     = "Carga de Trabalho"
	colCreatedAt    = "Data de criação"
	colUpdatedAt    = "Última atualização"
	colStartedAt    = "Data de início"
	colDeadline     = "Prazo"
	colCompletedAt  = "Data de finalização"
	colTracking     = "Tempo de Tracking"
	colPaused       = "Pausada"
	colPendingWith  = "Pendente com"
	colDiscontinued = "Descontinuada"
)

// StandardMapper handles the first-party task export.
type StandardMapper struct{}

func (StandardMapper) Name() string { return "standard" }

func (StandardMapper) Required() []string {
	return []string{colID, colTitle, colStatus, colDeadline}
}

func (m StandardMapper) Normalize(row map[string]string, ref time.Time) (t Task) {
	defer recoverInvalid(row, &t)

	t = baseTask(row, colID, map[string]bool{
		colID: true, colTitle: true, colStatus: true, colResponsible: true,
		colStrategy: true, colStage: true, colPriority: true, colWorkload: true,
		colCreatedAt: true, colUpdatedAt: true, colStartedAt: true,
		colDeadline: true, colCompletedAt: true, colTracking: true,
		colPaused: true, colPendingWith: true, colDiscontinued: true,
	})
	if t.Invalid {
		return t
	}

	t.Title = defaultString(row[colTitle], "Sem título")
	t.Responsible = defaultString(row[colResponsible], NotAvailable)
	t.Strategy = defaultString(row[colStrategy], NotAvailable)
	t.Stage = strings.TrimSpace(row[colStage])
	t.Priority = parsePriority(row[colPriority])
	t.PendingWith = strings.TrimSpace(row[colPendingWith])
	t.Paused = strings.TrimSpace(row[colPaused])
	t.WorkloadHours = parseDecimal(row[colWorkload])
	t.TrackedHours = timeparse.DurationToHours(row[colTracking])

	t.CreatedAt = timeparse.ParseDate(row[colCreatedAt])
	t.UpdatedAt = timeparse.ParseDate(row[colUpdatedAt])
	t.StartedAt = timeparse.ParseDate(row[colStartedAt])
	t.Deadline = timeparse.ParseDate(row[colDeadline])
	t.CompletedAt = timeparse.ParseDate(row[colCompletedAt])

	// The explicit discontinuation flag wins over the status column.
	if isAffirmative(row[colDiscontinued]) {
		t.Status = StatusDiscontinued
	} else {
		t.Status = normalizeStatusLabel(row[colStatus])
	}

	derive(&t, ref)
	return t
}

// ClickUp export column headers.
const (
	clickupColID          = "Task ID"
	clickupColTitle       = "Task Name"
	clickupColStatus      = "Status"
	clickupColAssignee    = "Assignee"
	clickupColList        = "List Name"
	clickupColPriority    = "Priority"
	clickupColCreatedAt   = "Date Created"
	clickupColUpdatedAt   = "Date Updated"
	clickupColStartedAt   = "Start Date"
	clickupColDeadline    = "Due Date"
	clickupColCompletedAt = "Date Closed"
	clickupColTracking    = "Time Tracked"
	clickupColEstimate    = "Time Estimated"
)

// clickupStatuses translates the ClickUp status vocabulary into the
// canonical one. Unknown labels degrade to Pendente.
var clickupStatuses = map[string]string{
	"atendido":  StatusCompleted,
	"cancelado": StatusDiscontinued,
	"andamento": StatusInProgress,
	"em aberto": StatusPending,
	"pendente":  StatusPending,
}

// ClickUpMapper handles CSV reports exported from ClickUp.
type ClickUpMapper struct{}

func (ClickUpMapper) Name() string { return "clickup" }

func (ClickUpMapper) Required() []string {
	return []string{clickupColID, clickupColTitle, clickupColStatus, clickupColDeadline}
}

func (m ClickUpMapper) Normalize(row map[string]string, ref time.Time) (t Task) {
	defer recoverInvalid(row, &t)

	t = baseTask(row, clickupColID, map[string]bool{
		clickupColID: true, clickupColTitle: true, clickupColStatus: true,
		clickupColAssignee: true, clickupColList: true, clickupColPriority: true,
		clickupColCreatedAt: true, clickupColUpdatedAt: true,
		clickupColStartedAt: true, clickupColDeadline: true,
		clickupColCompletedAt: true, clickupColTracking: true,
		clickupColEstimate: true,
	})
	if t.Invalid {
		return t
	}

	t.Title = defaultString(row[clickupColTitle], "Sem título")
	t.Responsible = defaultString(row[clickupColAssignee], NotAvailable)
	t.Strategy = defaultString(row[clickupColList], NotAvailable)
	t.Priority = parsePriority(row[clickupColPriority])
	t.WorkloadHours = parseDecimal(row[clickupColEstimate])
	t.TrackedHours = timeparse.DurationToHours(row[clickupColTracking])

	t.CreatedAt = timeparse.ParseDate(row[clickupColCreatedAt])
	t.UpdatedAt = timeparse.ParseDate(row[clickupColUpdatedAt])
	t.StartedAt = timeparse.ParseDate(row[clickupColStartedAt])
	t.Deadline = timeparse.ParseDate(row[clickupColDeadline])
	t.CompletedAt = timeparse.ParseDate(row[clickupColCompletedAt])

	raw := strings.ToLower(strings.TrimSpace(row[clickupColStatus]))
	if raw == "" {
		t.Status = StatusUndefined
	} else if mapped, ok := clickupStatuses[raw]; ok {
		t.Status = mapped
	} else {
		t.Status = StatusPending
	}

	derive(&t, ref)
	return t
}

// baseTask parses the identity field and collects unrecognized columns
// into Extra. A missing or non-integer ID marks the row Invalid.
func baseTask(row map[string]string, idCol string, known map[string]bool) Task {
	var t Task
	id, err := strconv.Atoi(strings.TrimSpace(row[idCol]))
	if err != nil {
		slog.Warn("row has no parseable task ID, dropping", "value", row[idCol])
		t.Invalid = true
		return t
	}
	t.ID = id
	for k, v := range row {
		if known[k] {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]string)
		}
		t.Extra[k] = v
	}
	return t
}

func recoverInvalid(row map[string]string, t *Task) {
	if r := recover(); r != nil {
		slog.Error("panic while normalizing row, dropping", "row", row, "panic", r)
		t.Invalid = true
	}
}

// normalizeStatusLabel trims and case-normalizes a free-text status:
// first letter upper, rest lower. Empty becomes the N/D sentinel.
func normalizeStatusLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusUndefined
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func defaultString(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// parsePriority accepts the numeric ranks 1..3 and the ClickUp priority
// names. Anything else is PriorityNone.
func parsePriority(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return PriorityNone
	case "urgent", "high":
		return PriorityHigh
	case "normal":
		return PriorityMedium
	case "low":
		return PriorityLow
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < PriorityHigh || p > PriorityLow {
		return PriorityNone
	}
	return p
}

// parseDecimal parses a number accepting the comma decimal separator;
// missing or malformed values default to 0.
func parseDecimal(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		if err != nil {
			slog.Warn("unparseable numeric field, treated as 0", "value", s)
		}
		return 0
	}
	return v
}

func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "yes", "true", "1":
		return true
	default:
		return false
	}
}
