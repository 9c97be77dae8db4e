package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

func ListArtifacts(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var artifacts []models.ProviderArtifact
	database.DB.
		Where("system_id = ?", system.ID).
		Order("category asc").
		Find(&artifacts)
	c.JSON(http.StatusOK, artifacts)
}

type artifactStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpsertArtifactStatus — статусы провайдерских артефактов ведутся по одному
// на категорию; отсутствующая запись создаётся на месте.
func UpsertArtifactStatus(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	category := models.ProviderCategory(c.Param("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown artifact category"})
		return
	}

	var req artifactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.ArtifactStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown artifact status"})
		return
	}

	var artifact models.ProviderArtifact
	err := database.DB.
		Where("system_id = ? AND category = ?", system.ID, category).
		First(&artifact).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		artifact = models.ProviderArtifact{
			SystemID: system.ID,
			Category: category,
			Status:   status,
			Notes:    req.Notes,
		}
		if err := database.DB.Create(&artifact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save artifact"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read artifact"})
		return
	default:
		artifact.Status = status
		if req.Notes != "" {
			artifact.Notes = req.Notes
		}
		if err := database.DB.Save(&artifact).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save artifact"})
			return
		}
	}

	database.CreateAuditLog(actor(c), "provider_artifact", string(category), "status_change", string(status))
	c.JSON(http.StatusOK, artifact)
}
