package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

// PutAnswers заменяет набор ответов системы. Набор, по которому уже
// считалась классификация, заблокирован: вместо правки создаётся новый,
// старый остаётся как есть для аудита.
func PutAnswers(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var answers models.AnswerMap
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for key, a := range answers {
		if !a.Value.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown answer value for question " + key})
			return
		}
	}

	var latest models.AnswerSet
	err := database.DB.
		Where("system_id = ?", system.ID).
		Order("id desc").
		First(&latest).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), latest.Locked:
		// первого набора нет либо последний уже заморожен — пишем новый
		set := models.AnswerSet{SystemID: system.ID, Answers: answers}
		if err := database.DB.Create(&set).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save answers"})
			return
		}
		database.CreateAuditLog(actor(c), "answer_set", system.PublicID.String(), "create", "")
		c.JSON(http.StatusCreated, set)
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read answers"})
	default:
		latest.Answers = answers
		if err := database.DB.Save(&latest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save answers"})
			return
		}
		database.CreateAuditLog(actor(c), "answer_set", system.PublicID.String(), "update", "")
		c.JSON(http.StatusOK, latest)
	}
}

func GetAnswers(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var latest models.AnswerSet
	err := database.DB.
		Where("system_id = ?", system.ID).
		Order("id desc").
		First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"answers": models.AnswerMap{}, "locked": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read answers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answers": latest.Answers, "locked": latest.Locked})
}
