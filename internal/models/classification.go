package models

import "time"

type RiskLevel string

const (
	RiskProhibited    RiskLevel = "prohibited"
	RiskHigh          RiskLevel = "high_risk"
	RiskLimited       RiskLevel = "limited_risk"
	RiskMinimal       RiskLevel = "minimal_risk"
	RiskNotClassified RiskLevel = "not_classified"
)

func (l RiskLevel) Valid() bool {
	switch l {
	case RiskProhibited, RiskHigh, RiskLimited, RiskMinimal, RiskNotClassified:
		return true
	}
	return false
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "" // not_classified без ответов
)

// Classification — одна запись журнала классификаций. Журнал append-only:
// прошлые версии никогда не обновляются и не удаляются, единственное исключение —
// снятие флага is_current при записи следующей версии.
type Classification struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	SystemID uint `gorm:"index;not null;uniqueIndex:uidx_system_version,priority:1"`
	Version  int  `gorm:"not null;uniqueIndex:uidx_system_version,priority:2"`

	RiskLevel  RiskLevel  `gorm:"type:varchar(30);not null"`
	Confidence Confidence `gorm:"type:varchar(10)"`
	Rationale  string     `gorm:"type:text"`
	IsCurrent  bool       `gorm:"not null;index"`

	// needs_review: уровень сохранён консервативно, нужна ручная проверка
	NeedsReview bool `gorm:"not null;default:false"`
	// внешний триггер переоценки (смена вендора, существенное изменение, плановый пересмотр)
	ReassessmentRequired bool `gorm:"not null;default:false"`

	ClassifierID string `gorm:"size:100;not null"` // кто запускал оценку
	ChangeReason string `gorm:"size:255"`
}
