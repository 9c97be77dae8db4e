package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ai-compliance/internal/database"
	"ai-compliance/internal/models"
)

type createEvidenceRequest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	ControlCode string `json:"control_code"`
}

func CreateEvidence(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var req createEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if len(req.Title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "evidence title must be at least 3 characters"})
		return
	}

	status := models.EvidenceStatus(req.Status)
	if req.Status == "" {
		status = models.EvidenceDraft
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown evidence status"})
		return
	}

	if req.ControlCode != "" {
		if _, found := controlCatalog.ByCode(req.ControlCode); !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown control code"})
			return
		}
	}

	record := models.EvidenceRecord{
		SystemID:    system.ID,
		Title:       req.Title,
		Status:      status,
		ControlCode: req.ControlCode,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save evidence"})
		return
	}

	// счётчик на привязанном контроле — денормализация для отчётов
	if record.ControlCode != "" {
		database.DB.Model(&models.ControlImplementation{}).
			Where("system_id = ? AND control_code = ?", system.ID, record.ControlCode).
			Update("evidence_count", gorm.Expr("evidence_count + 1"))
	}

	database.CreateAuditLog(actor(c), "evidence", strconv.Itoa(int(record.ID)), "create", record.Title)
	c.JSON(http.StatusCreated, record)
}

func ListEvidence(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	var records []models.EvidenceRecord
	database.DB.
		Where("system_id = ?", system.ID).
		Order("id asc").
		Find(&records)
	c.JSON(http.StatusOK, records)
}

type evidenceStatusRequest struct {
	Status string `json:"status"`
}

func UpdateEvidenceStatus(c *gin.Context) {
	system, ok := findSystem(c)
	if !ok {
		return
	}

	eid, err := strconv.Atoi(c.Param("eid"))
	if err != nil || eid <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid evidence id"})
		return
	}

	var record models.EvidenceRecord
	if err := database.DB.
		Where("id = ? AND system_id = ?", eid, system.ID).
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evidence not found"})
		return
	}

	var req evidenceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	status := models.EvidenceStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown evidence status"})
		return
	}

	record.Status = status
	if err := database.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save evidence status"})
		return
	}

	database.CreateAuditLog(actor(c), "evidence", strconv.Itoa(int(record.ID)), "status_change", string(status))
	c.JSON(http.StatusOK, record)
}
