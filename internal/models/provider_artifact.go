package models

import "gorm.io/gorm"

type ProviderCategory string

// Артефакты провайдера (глава III, раздел 3 — обязанности поставщика).
const (
	ArtifactTechnicalDocs  ProviderCategory = "technical_documentation"
	ArtifactRiskManagement ProviderCategory = "risk_management"
	ArtifactQMS            ProviderCategory = "quality_management"
	ArtifactConformity     ProviderCategory = "conformity_assessment"
	ArtifactDeclaration    ProviderCategory = "declaration_of_conformity"
	ArtifactCEMarking      ProviderCategory = "ce_marking"
	ArtifactRegistration   ProviderCategory = "registration"
	ArtifactMonitoring     ProviderCategory = "post_market_monitoring"
)

func (c ProviderCategory) Valid() bool {
	switch c {
	case ArtifactTechnicalDocs, ArtifactRiskManagement, ArtifactQMS, ArtifactConformity,
		ArtifactDeclaration, ArtifactCEMarking, ArtifactRegistration, ArtifactMonitoring:
		return true
	}
	return false
}

type ArtifactStatus string

const (
	ArtifactNotStarted ArtifactStatus = "not_started"
	ArtifactInProgress ArtifactStatus = "in_progress"
	ArtifactComplete   ArtifactStatus = "complete"
)

func (s ArtifactStatus) Valid() bool {
	switch s {
	case ArtifactNotStarted, ArtifactInProgress, ArtifactComplete:
		return true
	}
	return false
}

// ProviderArtifact — статус провайдерского артефакта по системе.
// Отсутствие записи трактуется как not_started.
type ProviderArtifact struct {
	gorm.Model
	SystemID uint             `gorm:"index;not null;uniqueIndex:uidx_system_artifact,priority:1"`
	Category ProviderCategory `gorm:"type:varchar(40);not null;uniqueIndex:uidx_system_artifact,priority:2"`

	Status ArtifactStatus `gorm:"type:varchar(20);not null"`
	Notes  string         `gorm:"type:text"`
}
