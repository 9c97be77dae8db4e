package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-compliance/internal/database"
	"ai-compliance/internal/engine"
	"ai-compliance/internal/models"
)

type classifyRequest struct {
	ChangeReason string `json:"change_reason"`
}

// ClassifySystem — полный проход оценки: классификация по последнему
// набору ответов, новая версия в леджере, сверка привязанных контролей.
func ClassifySystem(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var req classifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	var answerSet models.AnswerSet
	answers := models.AnswerMap{}
	err := database.DB.
		Where("system_id = ?", system.ID).
		Order("id desc").
		First(&answerSet).Error
	switch {
	case err == nil:
		answers = answerSet.Answers
	case errors.Is(err, gorm.ErrRecordNotFound):
		// без ответов классификатор честно вернёт not_classified
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read answers"})
		return
	}

	result := engine.Classify(answers)

	row, err := classLedger.Commit(c.Request.Context(), system.ID, result, actor(c), req.ChangeReason)
	if err != nil {
		if errors.Is(err, engine.ErrVersionConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "concurrent classification in progress, retry later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit classification"})
		return
	}

	// набор ответов, породивший классификацию, замораживаем
	if answerSet.ID != 0 && !answerSet.Locked {
		database.DB.Model(&answerSet).Update("locked", true)
	}

	resolved := engine.Resolve(result.Level, system.HasVendor(), controlCatalog)

	var existing []models.ControlImplementation
	if err := database.DB.Where("system_id = ?", system.ID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read control implementations"})
		return
	}
	plan := planReconcile(system.ID, existing, resolved)
	if err := applyReconcile(plan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reconcile controls"})
		return
	}

	database.CreateAuditLog(actor(c), "classification", system.PublicID.String(), "classify",
		fmt.Sprintf("version %d: %s (%s)", row.Version, row.RiskLevel, row.Confidence))

	c.JSON(http.StatusOK, gin.H{
		"classification": row,
		"result":         result,
		"controls":       resolved,
	})
}

type reassessmentRequest struct {
	Reason string `json:"reason"`
}

// FlagReassessment помечает текущую классификацию устаревшей (смена
// вендора, существенное изменение, плановый пересмотр). Сама переоценка —
// отдельный вызов ClassifySystem; историю флаг не трогает.
func FlagReassessment(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var req reassessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	current, err := classLedger.Current(c.Request.Context(), system.ID)
	if err != nil {
		var integrity *engine.HistoryIntegrityError
		if errors.As(err, &integrity) {
			c.JSON(http.StatusConflict, gin.H{"error": integrity.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read classification"})
		return
	}
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "system has never been classified"})
		return
	}

	if err := database.DB.Model(&models.Classification{}).
		Where("id = ?", current.ID).
		Update("reassessment_required", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to flag reassessment"})
		return
	}

	database.CreateAuditLog(actor(c), "classification", system.PublicID.String(), "flag_reassessment", req.Reason)
	c.JSON(http.StatusOK, gin.H{"flagged": true})
}

// ClassificationHistory — все версии журнала по убыванию.
func ClassificationHistory(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	history, err := classLedger.History(c.Request.Context(), system.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// CurrentClassification — текущая запись журнала (null, если оценок не было).
func CurrentClassification(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	current, err := classLedger.Current(c.Request.Context(), system.ID)
	if err != nil {
		var integrity *engine.HistoryIntegrityError
		if errors.As(err, &integrity) {
			c.JSON(http.StatusConflict, gin.H{"error": integrity.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read classification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classification": current})
}
