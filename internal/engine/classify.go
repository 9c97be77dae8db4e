package engine

import (
	"fmt"
	"sort"
	"strings"

	"ai-compliance/internal/models"
)

// Level — результат классификатора. Отличается от хранимого models.RiskLevel:
// needs_review и high_risk_candidate — рабочие состояния оценки,
// в журнал они ложатся через StoredLevel.
type Level string

const (
	LevelBlocked           Level = "blocked"
	LevelNeedsReview       Level = "needs_review"
	LevelHighRiskCandidate Level = "high_risk_candidate"
	LevelLimitedRisk       Level = "limited_risk"
	LevelMinimalRisk       Level = "minimal_risk"
	LevelNotClassified     Level = "not_classified"
)

// приоритет уровней, больший выигрывает
func levelOrdinal(l Level) int {
	switch l {
	case LevelBlocked:
		return 5
	case LevelNeedsReview:
		return 4
	case LevelHighRiskCandidate:
		return 3
	case LevelLimitedRisk:
		return 2
	case LevelMinimalRisk:
		return 1
	case LevelNotClassified:
		return 0
	}
	return -1
}

// Ключи скрининговых вопросов. Стабильны: на них завязаны сохранённые AnswerSet.
var (
	// этап 1 — попадает ли система под определение ИИ-системы
	DefinitionQuestions = []string{
		"def_autonomy",
		"def_inference",
		"def_adaptiveness",
	}

	// этап 2 — запрещённые практики (ст. 5)
	ProhibitedQuestions = []string{
		"prohibited_subliminal_manipulation",
		"prohibited_exploiting_vulnerabilities",
		"prohibited_social_scoring",
		"prohibited_predictive_policing",
		"prohibited_facial_scraping",
		"prohibited_emotion_workplace",
		"prohibited_biometric_categorization",
		"prohibited_realtime_biometric_id",
	}

	// этап 3 — категории высокого риска (приложение III + компонент безопасности)
	HighRiskQuestions = []string{
		"high_risk_biometrics",
		"high_risk_critical_infrastructure",
		"high_risk_education",
		"high_risk_employment",
		"high_risk_essential_services",
		"high_risk_law_enforcement",
		"high_risk_migration",
		"high_risk_justice",
		"high_risk_safety_component",
	}

	// этап 4 — обязанности прозрачности (ст. 50)
	TransparencyQuestions = []string{
		"transparency_chatbot",
		"transparency_synthetic_content",
		"transparency_emotion_recognition",
		"transparency_biometric_categorization",
		"transparency_deepfake",
	}
)

// Escalation — сигнал вызывающему, что нужна ревью-задача.
// Сам движок задач не создаёт.
type Escalation struct {
	Kind   string `json:"kind"` // "prohibited" | "review"
	Reason string `json:"reason"`
}

type Result struct {
	Level      Level             `json:"level"`
	Confidence models.Confidence `json:"confidence"`
	Rationale  string            `json:"rationale"`
	Escalation *Escalation       `json:"escalation,omitempty"`
}

// StoredLevel переводит рабочий уровень в хранимый + флаг needs_review.
func (r Result) StoredLevel() (models.RiskLevel, bool) {
	switch r.Level {
	case LevelBlocked:
		return models.RiskProhibited, false
	case LevelNeedsReview:
		return models.RiskNotClassified, true
	case LevelHighRiskCandidate:
		return models.RiskHigh, false
	case LevelLimitedRisk:
		return models.RiskLimited, false
	case LevelMinimalRisk:
		return models.RiskMinimal, false
	}
	return models.RiskNotClassified, false
}

// LevelOf — обратное соответствие для уже сохранённой классификации
// (нужно резолверу контролей при загрузке снимка).
func LevelOf(stored models.RiskLevel, needsReview bool) Level {
	if needsReview {
		return LevelNeedsReview
	}
	switch stored {
	case models.RiskProhibited:
		return LevelBlocked
	case models.RiskHigh:
		return LevelHighRiskCandidate
	case models.RiskLimited:
		return LevelLimitedRisk
	case models.RiskMinimal:
		return LevelMinimalRisk
	}
	return LevelNotClassified
}

// итог одного этапа до свёртки по приоритету
type stageOutcome struct {
	level     Level // LevelNotClassified = этап ничего не добавил
	rationale string
}

// Classify прогоняет четыре этапа скрининга над набором ответов.
// Чистая функция: никаких записей, эскалация — только сигнал в результате.
// Неполные ответы не являются ошибкой: этап без ответов деградирует
// в needs_review, полностью пустой набор — в not_classified.
func Classify(answers models.AnswerMap) Result {
	if len(answers) == 0 {
		return Result{
			Level:      LevelNotClassified,
			Confidence: models.ConfidenceNone,
			Rationale:  "no screening answers provided",
		}
	}

	unsureSeen := false
	note := func(keys []string) string { return strings.Join(keys, ", ") }

	// --- этап 1: определение ИИ-системы ---
	defYes, defNo, defUnsure, defMissing := splitAnswers(answers, DefinitionQuestions)
	if len(defUnsure) > 0 {
		unsureSeen = true
	}
	if len(defNo) == len(DefinitionQuestions) {
		// все индикаторы "no" — система вне определения, дальше не идём
		return Result{
			Level:      LevelNotClassified,
			Confidence: models.ConfidenceHigh,
			Rationale:  "does not meet the AI system definition: no autonomy, inference or adaptiveness",
		}
	}

	outcomes := []stageOutcome{}
	if len(defYes) == 0 && len(defMissing)+len(defUnsure) > 0 {
		outcomes = append(outcomes, stageOutcome{
			level:     LevelNeedsReview,
			rationale: "AI system definition could not be established from the answers given",
		})
	}

	// --- этап 2: запрещённые практики ---
	proYes, _, proUnsure, proMissing := splitAnswers(answers, ProhibitedQuestions)
	if len(proUnsure) > 0 {
		unsureSeen = true
	}
	if flagged := append(append([]string{}, proYes...), proUnsure...); len(flagged) > 0 {
		sort.Strings(flagged)
		// любое yes/unsure блокирует систему, остальные этапы не важны
		reason := fmt.Sprintf("prohibited practice indicators flagged: %s", note(flagged))
		return Result{
			Level:      LevelBlocked,
			Confidence: models.ConfidenceLow,
			Rationale:  reason,
			Escalation: &Escalation{Kind: "prohibited", Reason: reason},
		}
	}
	if len(proMissing) == len(ProhibitedQuestions) {
		outcomes = append(outcomes, stageOutcome{
			level:     LevelNeedsReview,
			rationale: "prohibited practice screening has not been answered",
		})
	}

	// --- этап 3: высокий риск ---
	hrYes, _, hrUnsure, hrMissing := splitAnswers(answers, HighRiskQuestions)
	if len(hrUnsure) > 0 {
		unsureSeen = true
	}
	switch {
	case len(hrYes) > 0:
		outcomes = append(outcomes, stageOutcome{
			level:     LevelHighRiskCandidate,
			rationale: fmt.Sprintf("high-risk categories matched: %s", note(hrYes)),
		})
	case len(hrUnsure) > 0:
		outcomes = append(outcomes, stageOutcome{
			level:     LevelNeedsReview,
			rationale: fmt.Sprintf("high-risk screening is inconclusive: %s", note(hrUnsure)),
		})
	case len(hrMissing) == len(HighRiskQuestions):
		outcomes = append(outcomes, stageOutcome{
			level:     LevelNeedsReview,
			rationale: "high-risk screening has not been answered",
		})
	}

	// --- этап 4: прозрачность (независим от этапов 2-3) ---
	trYes, _, trUnsure, trMissing := splitAnswers(answers, TransparencyQuestions)
	if len(trUnsure) > 0 {
		unsureSeen = true
	}
	switch {
	case len(trYes) > 0:
		outcomes = append(outcomes, stageOutcome{
			level:     LevelLimitedRisk,
			rationale: fmt.Sprintf("transparency obligations attach: %s", note(trYes)),
		})
	case len(trMissing) == len(TransparencyQuestions):
		outcomes = append(outcomes, stageOutcome{
			level:     LevelNeedsReview,
			rationale: "transparency screening has not been answered",
		})
	}

	// свёртка по приоритету
	final := stageOutcome{level: LevelMinimalRisk}
	var reasons []string
	for _, o := range outcomes {
		if levelOrdinal(o.level) > levelOrdinal(final.level) {
			final.level = o.level
		}
	}
	for _, o := range outcomes {
		if o.level == final.level {
			reasons = append(reasons, o.rationale)
		}
	}
	if len(reasons) == 0 {
		reasons = []string{"in scope; no prohibited, high-risk or transparency indicators flagged"}
	}

	res := Result{
		Level:     final.level,
		Rationale: strings.Join(reasons, "; "),
	}
	switch {
	case res.Level == LevelNeedsReview:
		res.Confidence = models.ConfidenceLow
		res.Escalation = &Escalation{Kind: "review", Reason: res.Rationale}
	case unsureSeen:
		res.Confidence = models.ConfidenceMedium
	default:
		res.Confidence = models.ConfidenceHigh
	}
	return res
}

// splitAnswers раскладывает ответы этапа по значениям; порядок ключей сохраняется.
func splitAnswers(answers models.AnswerMap, keys []string) (yes, no, unsure, missing []string) {
	for _, k := range keys {
		a, ok := answers[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		switch a.Value {
		case models.AnswerYes:
			yes = append(yes, k)
		case models.AnswerNo:
			no = append(no, k)
		case models.AnswerUnsure:
			unsure = append(unsure, k)
		}
	}
	return yes, no, unsure, missing
}
