package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SystemRole string

const (
	RoleDeployer SystemRole = "deployer"
	RoleProvider SystemRole = "provider"
)

// AISystem — субъект оценки (инвентаризированная ИИ-система).
type AISystem struct {
	gorm.Model
	PublicID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OrganizationID uint      `gorm:"index;not null"`
	Organization   Organization

	Name        string     `gorm:"size:255;not null"`
	Role        SystemRole `gorm:"type:varchar(20);not null"` // deployer / provider
	Purpose     string     `gorm:"type:text"`
	Vendor      string     `gorm:"size:255"` // пустая строка = разработано своими силами
	Department  string     `gorm:"size:100"`
	Description string     `gorm:"type:text"`
}

// HasVendor — система построена на продукте стороннего поставщика.
func (s AISystem) HasVendor() bool {
	return s.Vendor != ""
}
