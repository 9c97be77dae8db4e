package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Actor string `gorm:"size:100;not null"` // из заголовка X-Actor, проставляет gateway

	Entity   string `gorm:"size:50;not null"` // "system", "classification", "control" и т.п.
	EntityID string `gorm:"size:64"`
	Action   string `gorm:"size:50;not null"` // "create", "status_change", "classify" и т.п.
	Details  string `gorm:"type:text"`
}
