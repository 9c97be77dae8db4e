package engine

import (
	"math"

	"ai-compliance/internal/models"
)

// Веса категорий общего скорера. Категории без применимых элементов
// выпадают и из числителя, и из знаменателя.
const (
	classificationWeight      = 25.0
	classificationStaleWeight = 15.0
	controlsImplementedWeight = 40.0
	controlsProgressWeight    = 10.0
	evidenceWeight            = 25.0
	tasksWeight               = 10.0
)

type CategoryScore struct {
	Earned     float64 `json:"earned"`
	Possible   float64 `json:"possible"`
	Applicable bool    `json:"applicable"`
}

type ReadinessScore struct {
	Value      int                      `json:"value"` // 0..100
	Categories map[string]CategoryScore `json:"categories"`
}

// Score сворачивает снимок в одно число готовности 0..100.
// Чистая функция, пересчитывается при каждом чтении.
func Score(s Snapshot) ReadinessScore {
	cats := map[string]CategoryScore{}

	// классификация: применима всегда
	clsEarned := 0.0
	if c := s.Classification; c != nil && c.Level != models.RiskNotClassified {
		if c.ReassessmentRequired {
			clsEarned = classificationStaleWeight
		} else {
			clsEarned = classificationWeight
		}
	}
	cats["classification"] = CategoryScore{Earned: clsEarned, Possible: classificationWeight, Applicable: true}

	// контроли: только при наличии применимых
	implemented, inProgress, total := 0, 0, 0
	for _, c := range s.Controls {
		if !c.Applicable || c.Status == models.ControlNotApplicable {
			continue
		}
		total++
		switch c.Status {
		case models.ControlImplemented:
			implemented++
		case models.ControlInProgress:
			inProgress++
		}
	}
	// возможный максимум категории — 40: "10 × in_progress" это частичный
	// зачёт внутри тех же 40, а не отдельный вес
	ctrl := CategoryScore{Possible: controlsImplementedWeight}
	if total > 0 {
		ctrl.Applicable = true
		ctrl.Earned = controlsImplementedWeight*float64(implemented)/float64(total) +
			controlsProgressWeight*float64(inProgress)/float64(total)
	}
	cats["controls"] = ctrl

	// доказательства: только при наличии записей
	ev := CategoryScore{Possible: evidenceWeight}
	if n := len(s.Evidence); n > 0 {
		approved := 0
		for _, e := range s.Evidence {
			if e.Status == models.EvidenceApproved {
				approved++
			}
		}
		ev.Applicable = true
		ev.Earned = evidenceWeight * float64(approved) / float64(n)
	}
	cats["evidence"] = ev

	// задачи: применимы всегда, 10 за отсутствие просрочки
	overdue := 0
	for _, t := range s.Tasks {
		if t.Overdue(s.Now) {
			overdue++
		}
	}
	taskEarned := tasksWeight
	if overdue > 0 {
		taskEarned = 0
	}
	cats["tasks"] = CategoryScore{Earned: taskEarned, Possible: tasksWeight, Applicable: true}

	earned, possible := 0.0, 0.0
	for _, c := range cats {
		if !c.Applicable {
			continue
		}
		earned += c.Earned
		possible += c.Possible
	}

	value := 0
	if possible > 0 {
		value = int(math.Round(100 * earned / possible))
	}
	return ReadinessScore{Value: value, Categories: cats}
}

// providerWeights — фиксированные веса провайдерских артефактов, сумма 100.
// Намеренно другая политика, чем у общего скорера: ненормируется,
// отсутствующий артефакт считается not_started и даёт 0.
var providerWeights = []struct {
	Category models.ProviderCategory
	Weight   float64
}{
	{models.ArtifactTechnicalDocs, 20},
	{models.ArtifactRiskManagement, 15},
	{models.ArtifactQMS, 15},
	{models.ArtifactConformity, 15},
	{models.ArtifactDeclaration, 10},
	{models.ArtifactCEMarking, 5},
	{models.ArtifactRegistration, 10},
	{models.ArtifactMonitoring, 10},
}

type ProviderCategoryScore struct {
	Category models.ProviderCategory `json:"category"`
	Weight   float64                 `json:"weight"`
	Status   models.ArtifactStatus   `json:"status"`
	Score    float64                 `json:"score"` // 0 / 50 / 100
}

type ProviderReadiness struct {
	Value      int                     `json:"value"` // 0..100
	Categories []ProviderCategoryScore `json:"categories"`
}

// ProviderScore — готовность провайдера по восьми фиксированным категориям.
func ProviderScore(artifacts map[models.ProviderCategory]models.ArtifactStatus) ProviderReadiness {
	out := ProviderReadiness{Categories: make([]ProviderCategoryScore, 0, len(providerWeights))}

	weighted := 0.0
	for _, w := range providerWeights {
		status, ok := artifacts[w.Category]
		if !ok {
			status = models.ArtifactNotStarted
		}
		score := 0.0
		switch status {
		case models.ArtifactComplete:
			score = 100
		case models.ArtifactInProgress:
			score = 50
		}
		weighted += w.Weight * score / 100
		out.Categories = append(out.Categories, ProviderCategoryScore{
			Category: w.Category,
			Weight:   w.Weight,
			Status:   status,
			Score:    score,
		})
	}
	out.Value = int(math.Round(weighted))
	return out
}
