package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	gorm.Model
	PublicID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Name     string `gorm:"size:255;not null"` // Название организации
	Industry string `gorm:"size:100"`          // Отрасль
	Country  string `gorm:"size:100"`
	Notes    string `gorm:"type:text"` // Комментарии об организации

	Systems []AISystem `gorm:"foreignKey:OrganizationID"`
}
