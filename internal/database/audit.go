package database

import "ai-compliance/internal/models"

// helper для записи в журнал аудита
func CreateAuditLog(actor, entity, entityID, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		Actor:    actor,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}
