package models

import "gorm.io/gorm"

type ControlStatus string

const (
	ControlNotStarted    ControlStatus = "not_started"
	ControlInProgress    ControlStatus = "in_progress"
	ControlImplemented   ControlStatus = "implemented"
	ControlNotApplicable ControlStatus = "not_applicable"
)

func (s ControlStatus) Valid() bool {
	switch s {
	case ControlNotStarted, ControlInProgress, ControlImplemented, ControlNotApplicable:
		return true
	}
	return false
}

// ControlImplementation — привязка "контроль каталога → конкретная система"
// со статусом внедрения. При смене уровня риска ставшие неприменимыми записи
// не удаляются, а помечаются applicable=false: история внедрения сохраняется.
type ControlImplementation struct {
	gorm.Model
	SystemID    uint   `gorm:"index;not null;uniqueIndex:uidx_system_control,priority:1"`
	ControlCode string `gorm:"size:32;not null;uniqueIndex:uidx_system_control,priority:2"`

	Status        ControlStatus `gorm:"type:varchar(20);not null"`
	Applicable    bool          `gorm:"not null;default:true"`
	EvidenceCount int           `gorm:"not null;default:0"`
	Notes         string        `gorm:"type:text"`
}
