package engine

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/google/uuid"

	"ai-compliance/internal/catalog"
	"ai-compliance/internal/models"
)

// Snapshot — неизменяемый срез состояния одной системы, с которым работают
// детектор пробелов и скореры. Собирается адаптером хранилища; движок сам
// никуда не ходит и считает заново при каждом чтении.
type Snapshot struct {
	SystemID  uuid.UUID
	HasVendor bool
	Now       time.Time

	Classification *ClassificationState // nil = ни разу не классифицировалась
	Controls       []ControlState
	Evidence       []EvidenceState
	Tasks          []TaskState
	Artifacts      map[models.ProviderCategory]models.ArtifactStatus
}

type ClassificationState struct {
	Level                models.RiskLevel
	NeedsReview          bool
	ReassessmentRequired bool
	Version              int
}

type ControlState struct {
	Code       string
	Category   string
	Tags       []catalog.Tag
	Status     models.ControlStatus
	Applicable bool
}

type EvidenceState struct {
	ID     uint
	Status models.EvidenceStatus
}

type TaskState struct {
	ID       uint
	Status   models.TaskStatus
	Priority models.TaskPriority
	DueDate  *time.Time
}

// Validate отбрасывает кривые снимки до того, как они дойдут до чистых функций.
// Неизвестный тег перечисления — ошибка адаптера, не повод для паники глубже.
func (s Snapshot) Validate() error {
	if s.SystemID == uuid.Nil {
		return &InvalidSnapshotError{Reason: "system id is empty"}
	}
	if s.Now.IsZero() {
		return &InvalidSnapshotError{Reason: "snapshot time is zero"}
	}
	if c := s.Classification; c != nil && !c.Level.Valid() {
		return &InvalidSnapshotError{Reason: fmt.Sprintf("unknown risk level %q", c.Level)}
	}
	for _, c := range s.Controls {
		if !c.Status.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("control %s: unknown status %q", c.Code, c.Status)}
		}
	}
	for _, e := range s.Evidence {
		if !e.Status.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("evidence %d: unknown status %q", e.ID, e.Status)}
		}
	}
	for _, t := range s.Tasks {
		if !t.Status.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("task %d: unknown status %q", t.ID, t.Status)}
		}
		if !t.Priority.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("task %d: unknown priority %q", t.ID, t.Priority)}
		}
	}
	for cat, st := range s.Artifacts {
		if !cat.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("unknown artifact category %q", cat)}
		}
		if !st.Valid() {
			return &InvalidSnapshotError{Reason: fmt.Sprintf("artifact %s: unknown status %q", cat, st)}
		}
	}
	return nil
}

// Hash — стабильный FNV-1a по упорядоченному содержимому снимка.
// Используется как ключ внешнего кеша: сам движок ничего не мемоизирует.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}

	write(s.SystemID.String(), fmt.Sprint(s.HasVendor))
	if c := s.Classification; c != nil {
		write(string(c.Level), fmt.Sprint(c.NeedsReview), fmt.Sprint(c.ReassessmentRequired), fmt.Sprint(c.Version))
	} else {
		write("unclassified")
	}

	for _, c := range s.Controls {
		write("control", c.Code, string(c.Status), fmt.Sprint(c.Applicable))
	}
	for _, e := range s.Evidence {
		write("evidence", fmt.Sprint(e.ID), string(e.Status))
	}
	for _, t := range s.Tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format(time.RFC3339)
		}
		// просроченность зависит от Now, поэтому в ключ входит сам факт просрочки
		write("task", fmt.Sprint(t.ID), string(t.Status), string(t.Priority), due, fmt.Sprint(t.Overdue(s.Now)))
	}

	cats := make([]string, 0, len(s.Artifacts))
	for c := range s.Artifacts {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		write("artifact", c, string(s.Artifacts[models.ProviderCategory(c)]))
	}
	return h.Sum64()
}

// Overdue — задача не закрыта и срок прошёл.
func (t TaskState) Overdue(now time.Time) bool {
	return t.Status != models.TaskDone && t.DueDate != nil && t.DueDate.Before(now)
}
