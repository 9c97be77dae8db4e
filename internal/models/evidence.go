package models

import "gorm.io/gorm"

type EvidenceStatus string

const (
	EvidenceDraft    EvidenceStatus = "draft"
	EvidenceApproved EvidenceStatus = "approved"
	EvidenceExpired  EvidenceStatus = "expired"
	EvidenceArchived EvidenceStatus = "archived"
)

func (s EvidenceStatus) Valid() bool {
	switch s {
	case EvidenceDraft, EvidenceApproved, EvidenceExpired, EvidenceArchived:
		return true
	}
	return false
}

// EvidenceRecord — подтверждающий документ. Файлы живут во внешнем хранилище,
// движок видит только статус.
type EvidenceRecord struct {
	gorm.Model
	SystemID uint `gorm:"index;not null"`

	Title       string         `gorm:"size:255;not null"`
	Status      EvidenceStatus `gorm:"type:varchar(20);not null"`
	ControlCode string         `gorm:"size:32"` // к какому контролю относится (необязательно)
}
