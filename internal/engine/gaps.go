package engine

import (
	"fmt"
	"sort"

	"ai-compliance/internal/catalog"
	"ai-compliance/internal/models"
)

type GapCategory string

const (
	GapControl        GapCategory = "control"
	GapEvidence       GapCategory = "evidence"
	GapClassification GapCategory = "classification"
	GapTraining       GapCategory = "training"
	GapFRIA           GapCategory = "fria"
	GapTask           GapCategory = "task"
)

type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityHigh     GapSeverity = "high"
	SeverityMedium   GapSeverity = "medium"
	SeverityLow      GapSeverity = "low"
)

func severityOrdinal(s GapSeverity) int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0
	}
	return -1
}

// GapItem — найденный дефицит. Никогда не персистится: пересчитывается
// из свежего снимка при каждом чтении.
type GapItem struct {
	ID              string      `json:"id"`
	Category        GapCategory `json:"category"`
	Severity        GapSeverity `json:"severity"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	ActionHint      string      `json:"action_hint"`
	RelatedEntityID string      `json:"related_entity_id,omitempty"`
}

// DetectGaps прогоняет независимые правила над снимком. Правила не гасят
// друг друга: по одной системе может сработать несколько. Результат
// детерминирован: фиксированный порядок правил, затем устойчивая
// сортировка по убыванию серьёзности.
func DetectGaps(s Snapshot) []GapItem {
	var gaps []GapItem

	gaps = append(gaps, classificationGaps(s)...)
	gaps = append(gaps, controlGaps(s)...)
	gaps = append(gaps, evidenceGaps(s)...)
	gaps = append(gaps, taskGaps(s)...)
	gaps = append(gaps, friaGaps(s)...)
	gaps = append(gaps, trainingGaps(s)...)

	sort.SliceStable(gaps, func(i, j int) bool {
		return severityOrdinal(gaps[i].Severity) > severityOrdinal(gaps[j].Severity)
	})
	return gaps
}

func classificationGaps(s Snapshot) []GapItem {
	c := s.Classification
	switch {
	case c == nil, c.Level == models.RiskNotClassified && !c.NeedsReview:
		return []GapItem{{
			ID:          "classification-missing",
			Category:    GapClassification,
			Severity:    SeverityCritical,
			Title:       "System is not classified",
			Description: "No risk classification has been computed for this system.",
			ActionHint:  "Complete the screening questionnaire and run classification.",
		}}
	case c.NeedsReview:
		return []GapItem{{
			ID:          "classification-review",
			Category:    GapClassification,
			Severity:    SeverityHigh,
			Title:       "Classification needs manual review",
			Description: "The last classification could not be concluded automatically.",
			ActionHint:  "Resolve the open screening answers and re-run classification.",
		}}
	case c.ReassessmentRequired:
		return []GapItem{{
			ID:          "classification-reassessment",
			Category:    GapClassification,
			Severity:    SeverityHigh,
			Title:       "Classification flagged for reassessment",
			Description: "A material change makes the current classification stale.",
			ActionHint:  "Re-run the assessment to record a new classification version.",
		}}
	}
	return nil
}

func controlGaps(s Snapshot) []GapItem {
	// считаем только применимые контроли; not_applicable из расчёта исключается
	var active []ControlState
	for _, c := range s.Controls {
		if c.Applicable && c.Status != models.ControlNotApplicable {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return nil
	}

	notStarted := 0
	for _, c := range active {
		if c.Status == models.ControlNotStarted {
			notStarted++
		}
	}
	if notStarted == len(active) {
		// агрегат вместо лавины однотипных пунктов
		return []GapItem{{
			ID:          "controls-none-started",
			Category:    GapControl,
			Severity:    SeverityCritical,
			Title:       "No control implementation started",
			Description: fmt.Sprintf("All %d applicable controls are still not started.", len(active)),
			ActionHint:  "Plan and start implementation of the attached controls.",
		}}
	}

	var gaps []GapItem
	for _, c := range active {
		switch c.Status {
		case models.ControlNotStarted:
			if hasTag(c.Tags, catalog.TagHighRisk) || c.Category == "DEP" {
				gaps = append(gaps, GapItem{
					ID:              "control-" + c.Code,
					Category:        GapControl,
					Severity:        SeverityHigh,
					Title:           fmt.Sprintf("Control %s not started", c.Code),
					Description:     fmt.Sprintf("Mandatory control %s has no implementation activity.", c.Code),
					ActionHint:      "Assign an owner and start implementation.",
					RelatedEntityID: c.Code,
				})
			}
		case models.ControlInProgress:
			gaps = append(gaps, GapItem{
				ID:              "control-progress-" + c.Code,
				Category:        GapControl,
				Severity:        SeverityLow,
				Title:           fmt.Sprintf("Control %s in progress", c.Code),
				Description:     fmt.Sprintf("Control %s is being implemented but is not finished.", c.Code),
				ActionHint:      "Finish implementation and attach evidence.",
				RelatedEntityID: c.Code,
			})
		}
	}
	return gaps
}

func evidenceGaps(s Snapshot) []GapItem {
	if len(s.Evidence) == 0 {
		return []GapItem{{
			ID:          "evidence-none",
			Category:    GapEvidence,
			Severity:    SeverityHigh,
			Title:       "No evidence recorded",
			Description: "There is no evidence backing any compliance claim.",
			ActionHint:  "Upload and approve evidence for implemented controls.",
		}}
	}

	var gaps []GapItem
	drafts := 0
	for _, e := range s.Evidence {
		if e.Status == models.EvidenceDraft {
			drafts++
		}
	}
	if drafts > 0 {
		gaps = append(gaps, GapItem{
			ID:          "evidence-draft",
			Category:    GapEvidence,
			Severity:    SeverityMedium,
			Title:       "Draft evidence awaiting approval",
			Description: fmt.Sprintf("%d evidence records are still in draft.", drafts),
			ActionHint:  "Review and approve the draft evidence.",
		})
	}
	for _, e := range s.Evidence {
		if e.Status == models.EvidenceExpired {
			gaps = append(gaps, GapItem{
				ID:              fmt.Sprintf("evidence-expired-%d", e.ID),
				Category:        GapEvidence,
				Severity:        SeverityHigh,
				Title:           "Evidence expired",
				Description:     fmt.Sprintf("Evidence record %d has expired and no longer supports compliance.", e.ID),
				ActionHint:      "Replace the expired evidence with a current record.",
				RelatedEntityID: fmt.Sprint(e.ID),
			})
		}
	}
	return gaps
}

func taskGaps(s Snapshot) []GapItem {
	var gaps []GapItem
	for _, t := range s.Tasks {
		if !t.Overdue(s.Now) {
			continue
		}
		sev := SeverityMedium
		if t.Priority == models.PriorityHigh {
			sev = SeverityHigh
		}
		gaps = append(gaps, GapItem{
			ID:              fmt.Sprintf("task-overdue-%d", t.ID),
			Category:        GapTask,
			Severity:        sev,
			Title:           "Task overdue",
			Description:     fmt.Sprintf("Task %d is past its due date and not done.", t.ID),
			ActionHint:      "Complete or reschedule the task.",
			RelatedEntityID: fmt.Sprint(t.ID),
		})
	}
	return gaps
}

func friaGaps(s Snapshot) []GapItem {
	if s.Classification == nil || s.Classification.Level != models.RiskHigh {
		return nil
	}
	return []GapItem{{
		ID:          "fria-required",
		Category:    GapFRIA,
		Severity:    SeverityHigh,
		Title:       "Fundamental rights impact assessment may be outstanding",
		Description: "High-risk systems require an impact assessment before deployment.",
		ActionHint:  "Complete and document the impact assessment (control RSK-02).",
	}}
}

func trainingGaps(s Snapshot) []GapItem {
	c := s.Classification
	if c == nil || c.Level == models.RiskNotClassified {
		return nil
	}
	for _, ctrl := range s.Controls {
		if ctrl.Category == "TRN" && ctrl.Applicable && ctrl.Status != models.ControlImplemented {
			return []GapItem{{
				ID:              "training-missing",
				Category:        GapTraining,
				Severity:        SeverityMedium,
				Title:           "AI literacy training not in place",
				Description:     "Staff operating the system have no documented AI literacy training.",
				ActionHint:      "Roll out the training programme and record completion.",
				RelatedEntityID: ctrl.Code,
			}}
		}
	}
	return nil
}

func hasTag(tags []catalog.Tag, t catalog.Tag) bool {
	for _, tag := range tags {
		if tag == t {
			return true
		}
	}
	return false
}
