package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-compliance/internal/catalog"
	"ai-compliance/internal/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func emptySnapshot() Snapshot {
	return Snapshot{
		SystemID:  uuid.New(),
		Now:       testNow,
		Artifacts: map[models.ProviderCategory]models.ArtifactStatus{},
	}
}

func classifiedSnapshot(level models.RiskLevel) Snapshot {
	s := emptySnapshot()
	s.Classification = &ClassificationState{Level: level, Version: 1}
	return s
}

func control(code, category string, tags []catalog.Tag, status models.ControlStatus) ControlState {
	return ControlState{Code: code, Category: category, Tags: tags, Status: status, Applicable: true}
}

func gapByID(t *testing.T, gaps []GapItem, id string) GapItem {
	t.Helper()
	for _, g := range gaps {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("gap %q not found in %d gaps", id, len(gaps))
	return GapItem{}
}

func hasGap(gaps []GapItem, id string) bool {
	for _, g := range gaps {
		if g.ID == id {
			return true
		}
	}
	return false
}

func TestDetectGaps_Unclassified(t *testing.T) {
	gaps := DetectGaps(emptySnapshot())

	g := gapByID(t, gaps, "classification-missing")
	assert.Equal(t, SeverityCritical, g.Severity)
	assert.Equal(t, GapClassification, g.Category)
}

func TestDetectGaps_NeedsReview(t *testing.T) {
	s := emptySnapshot()
	s.Classification = &ClassificationState{Level: models.RiskNotClassified, NeedsReview: true, Version: 2}

	gaps := DetectGaps(s)

	g := gapByID(t, gaps, "classification-review")
	assert.Equal(t, SeverityHigh, g.Severity)
	assert.False(t, hasGap(gaps, "classification-missing"))
}

func TestDetectGaps_ReassessmentFlagged(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)
	s.Classification.ReassessmentRequired = true

	gaps := DetectGaps(s)

	g := gapByID(t, gaps, "classification-reassessment")
	assert.Equal(t, SeverityHigh, g.Severity)
}

func TestDetectGaps_AllControlsNotStarted_Aggregate(t *testing.T) {
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = []ControlState{
		control("RSK-01", "RSK", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
		control("TEC-01", "TEC", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
		control("GOV-01", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlNotStarted),
	}

	gaps := DetectGaps(s)

	g := gapByID(t, gaps, "controls-none-started")
	assert.Equal(t, SeverityCritical, g.Severity)
	// агрегат вместо пунктов по каждому контролю
	assert.False(t, hasGap(gaps, "control-RSK-01"))
	assert.False(t, hasGap(gaps, "control-TEC-01"))
}

func TestDetectGaps_PerControlRules(t *testing.T) {
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = []ControlState{
		control("GOV-01", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlImplemented),
		control("RSK-01", "RSK", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
		control("DEP-01", "DEP", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
		control("TRN-01", "TRN", []catalog.Tag{catalog.TagAll}, models.ControlInProgress),
	}

	gaps := DetectGaps(s)

	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "control-RSK-01").Severity)
	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "control-DEP-01").Severity)
	assert.Equal(t, SeverityLow, gapByID(t, gaps, "control-progress-TRN-01").Severity)
	assert.False(t, hasGap(gaps, "controls-none-started"))
}

func TestDetectGaps_BaselineNotStarted_NoHighGap(t *testing.T) {
	// not_started без тега high_risk и не DEP — индивидуального пункта нет
	s := classifiedSnapshot(models.RiskMinimal)
	s.Controls = []ControlState{
		control("GOV-01", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlNotStarted),
		control("GOV-02", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlImplemented),
	}

	gaps := DetectGaps(s)

	assert.False(t, hasGap(gaps, "control-GOV-01"))
}

func TestDetectGaps_Evidence(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)

	gaps := DetectGaps(s)
	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "evidence-none").Severity)

	s.Evidence = []EvidenceState{
		{ID: 1, Status: models.EvidenceDraft},
		{ID: 2, Status: models.EvidenceDraft},
		{ID: 3, Status: models.EvidenceExpired},
		{ID: 4, Status: models.EvidenceApproved},
	}
	gaps = DetectGaps(s)

	assert.False(t, hasGap(gaps, "evidence-none"))
	draft := gapByID(t, gaps, "evidence-draft")
	assert.Equal(t, SeverityMedium, draft.Severity)
	assert.Contains(t, draft.Description, "2")
	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "evidence-expired-3").Severity)
}

func TestDetectGaps_OverdueTasks(t *testing.T) {
	past := testNow.Add(-48 * time.Hour)
	future := testNow.Add(48 * time.Hour)

	s := classifiedSnapshot(models.RiskMinimal)
	s.Tasks = []TaskState{
		{ID: 1, Status: models.TaskTodo, Priority: models.PriorityHigh, DueDate: &past},
		{ID: 2, Status: models.TaskInProgress, Priority: models.PriorityLow, DueDate: &past},
		{ID: 3, Status: models.TaskDone, Priority: models.PriorityHigh, DueDate: &past},
		{ID: 4, Status: models.TaskTodo, Priority: models.PriorityHigh, DueDate: &future},
		{ID: 5, Status: models.TaskTodo, Priority: models.PriorityHigh},
	}

	gaps := DetectGaps(s)

	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "task-overdue-1").Severity)
	assert.Equal(t, SeverityMedium, gapByID(t, gaps, "task-overdue-2").Severity)
	assert.False(t, hasGap(gaps, "task-overdue-3"), "done tasks are never overdue")
	assert.False(t, hasGap(gaps, "task-overdue-4"))
	assert.False(t, hasGap(gaps, "task-overdue-5"), "tasks without due date are never overdue")
}

func TestDetectGaps_FRIA(t *testing.T) {
	gaps := DetectGaps(classifiedSnapshot(models.RiskHigh))
	assert.Equal(t, SeverityHigh, gapByID(t, gaps, "fria-required").Severity)

	gaps = DetectGaps(classifiedSnapshot(models.RiskLimited))
	assert.False(t, hasGap(gaps, "fria-required"))
}

func TestDetectGaps_Training(t *testing.T) {
	s := classifiedSnapshot(models.RiskLimited)
	s.Controls = []ControlState{
		control("TRN-01", "TRN", []catalog.Tag{catalog.TagAll}, models.ControlNotStarted),
		control("GOV-01", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlImplemented),
	}

	gaps := DetectGaps(s)
	assert.True(t, hasGap(gaps, "training-missing"))

	s.Controls[0].Status = models.ControlImplemented
	gaps = DetectGaps(s)
	assert.False(t, hasGap(gaps, "training-missing"))
}

func TestDetectGaps_RulesDoNotShortCircuit(t *testing.T) {
	past := testNow.Add(-time.Hour)
	s := classifiedSnapshot(models.RiskHigh)
	s.Classification.ReassessmentRequired = true
	s.Controls = []ControlState{
		control("RSK-01", "RSK", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
	}
	s.Tasks = []TaskState{{ID: 9, Status: models.TaskTodo, Priority: models.PriorityHigh, DueDate: &past}}

	gaps := DetectGaps(s)

	for _, id := range []string{"classification-reassessment", "controls-none-started", "evidence-none", "task-overdue-9", "fria-required"} {
		assert.Truef(t, hasGap(gaps, id), "expected gap %s to coexist", id)
	}
}

func TestDetectGaps_DeterministicAndSorted(t *testing.T) {
	past := testNow.Add(-time.Hour)
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = []ControlState{
		control("GOV-01", "GOV", []catalog.Tag{catalog.TagAll}, models.ControlImplemented),
		control("RSK-01", "RSK", []catalog.Tag{catalog.TagHighRisk}, models.ControlNotStarted),
		control("TRN-01", "TRN", []catalog.Tag{catalog.TagAll}, models.ControlInProgress),
	}
	s.Evidence = []EvidenceState{{ID: 1, Status: models.EvidenceDraft}}
	s.Tasks = []TaskState{{ID: 2, Status: models.TaskTodo, Priority: models.PriorityLow, DueDate: &past}}

	first := DetectGaps(s)
	second := DetectGaps(s)
	require.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, severityOrdinal(first[i-1].Severity), severityOrdinal(first[i].Severity),
			"gaps must be partitioned by severity")
	}
}
