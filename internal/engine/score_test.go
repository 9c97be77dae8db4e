package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-compliance/internal/catalog"
	"ai-compliance/internal/models"
)

func controlsWithStatus(n int, status models.ControlStatus) []ControlState {
	out := make([]ControlState, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ControlState{
			Code:       string(rune('A' + i)),
			Category:   "GOV",
			Tags:       []catalog.Tag{catalog.TagAll},
			Status:     status,
			Applicable: true,
		})
	}
	return out
}

func TestScore_EmptySnapshot(t *testing.T) {
	// применимы только классификация (0/25) и задачи (10/10): round(100*10/35)
	score := Score(emptySnapshot())

	assert.Equal(t, 29, score.Value)
	assert.True(t, score.Categories["classification"].Applicable)
	assert.True(t, score.Categories["tasks"].Applicable)
	assert.False(t, score.Categories["controls"].Applicable)
	assert.False(t, score.Categories["evidence"].Applicable)
}

func TestScore_Perfect(t *testing.T) {
	s := classifiedSnapshot(models.RiskHigh)
	s.Controls = controlsWithStatus(10, models.ControlImplemented)
	s.Evidence = []EvidenceState{
		{ID: 1, Status: models.EvidenceApproved},
		{ID: 2, Status: models.EvidenceApproved},
		{ID: 3, Status: models.EvidenceApproved},
		{ID: 4, Status: models.EvidenceApproved},
		{ID: 5, Status: models.EvidenceApproved},
	}

	score := Score(s)

	assert.Equal(t, 100, score.Value)
}

func TestScore_ControlsInProgressOnly(t *testing.T) {
	// 10 контролей в работе: контроли дают 10 из 40, классификация 0 из 25,
	// задачи 10 из 10 — round(100*20/75)
	s := emptySnapshot()
	s.Controls = controlsWithStatus(10, models.ControlInProgress)

	score := Score(s)

	assert.InDelta(t, 10.0, score.Categories["controls"].Earned, 0.001)
	assert.Equal(t, 27, score.Value)
}

func TestScore_ReassessmentFlagged(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)
	s.Classification.ReassessmentRequired = true

	score := Score(s)

	assert.InDelta(t, 15.0, score.Categories["classification"].Earned, 0.001)
}

func TestScore_OverdueTaskZeroesTaskCategory(t *testing.T) {
	past := testNow.Add(-time.Hour)
	s := classifiedSnapshot(models.RiskMinimal)
	s.Tasks = []TaskState{{ID: 1, Status: models.TaskTodo, Priority: models.PriorityLow, DueDate: &past}}

	score := Score(s)

	assert.InDelta(t, 0.0, score.Categories["tasks"].Earned, 0.001)
	// классификация 25 из применимых 35
	assert.Equal(t, 71, score.Value)
}

func TestScore_PartialControls(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)
	s.Controls = append(controlsWithStatus(5, models.ControlImplemented), controlsWithStatus(5, models.ControlInProgress)...)

	score := Score(s)

	// 40*(5/10) + 10*(5/10) = 25
	assert.InDelta(t, 25.0, score.Categories["controls"].Earned, 0.001)
}

func TestScore_NotApplicableControlsExcluded(t *testing.T) {
	s := classifiedSnapshot(models.RiskMinimal)
	s.Controls = controlsWithStatus(2, models.ControlImplemented)
	s.Controls = append(s.Controls, ControlState{Code: "X", Category: "GOV", Status: models.ControlNotApplicable, Applicable: true})
	s.Controls = append(s.Controls, ControlState{Code: "Y", Category: "GOV", Status: models.ControlNotStarted, Applicable: false})

	score := Score(s)

	// в знаменателе только два применимых внедрённых контроля
	assert.InDelta(t, 40.0, score.Categories["controls"].Earned, 0.001)
}

func TestScore_AlwaysInRange(t *testing.T) {
	snaps := []Snapshot{
		emptySnapshot(),
		classifiedSnapshot(models.RiskHigh),
		func() Snapshot {
			s := classifiedSnapshot(models.RiskLimited)
			s.Controls = controlsWithStatus(3, models.ControlNotStarted)
			s.Evidence = []EvidenceState{{ID: 1, Status: models.EvidenceExpired}}
			return s
		}(),
	}
	for _, s := range snaps {
		v := Score(s).Value
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestProviderScore_Empty(t *testing.T) {
	got := ProviderScore(nil)

	assert.Equal(t, 0, got.Value)
	// все восемь категорий присутствуют в разбивке как not_started
	assert.Len(t, got.Categories, 8)
	for _, c := range got.Categories {
		assert.Equal(t, models.ArtifactNotStarted, c.Status)
	}
}

func TestProviderScore_AllComplete(t *testing.T) {
	artifacts := map[models.ProviderCategory]models.ArtifactStatus{}
	for _, w := range providerWeights {
		artifacts[w.Category] = models.ArtifactComplete
	}

	got := ProviderScore(artifacts)

	assert.Equal(t, 100, got.Value)
}

func TestProviderScore_AllInProgress(t *testing.T) {
	artifacts := map[models.ProviderCategory]models.ArtifactStatus{}
	for _, w := range providerWeights {
		artifacts[w.Category] = models.ArtifactInProgress
	}

	got := ProviderScore(artifacts)

	assert.Equal(t, 50, got.Value)
}

func TestProviderScore_NoRenormalization(t *testing.T) {
	// фиксированные веса не перенормируются: один готовый артефакт из
	// восьми даёт ровно свой вес
	got := ProviderScore(map[models.ProviderCategory]models.ArtifactStatus{
		models.ArtifactTechnicalDocs: models.ArtifactComplete,
	})
	assert.Equal(t, 20, got.Value)

	got = ProviderScore(map[models.ProviderCategory]models.ArtifactStatus{
		models.ArtifactTechnicalDocs:  models.ArtifactComplete,
		models.ArtifactRiskManagement: models.ArtifactInProgress,
	})
	// 20 + 7.5 = 27.5 → 28
	assert.Equal(t, 28, got.Value)
}
